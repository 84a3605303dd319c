// Command wheeldemo shows a month/day/year date picker built from wheel
// pickers.
//
// Drag a column, fling it, scroll it with the mouse wheel, click an item,
// or focus a column with the left and right arrows and step it with the up,
// down, page and home/end keys. Escape quits. Scroll positions are restored
// on the next start.
//
// Settings are read from wheel.yaml or wheel.toml in the directory given by
// -dir.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-drift/kit/cmd/wheeldemo/internal/config"
	"github.com/go-drift/kit/pkg/animation"
	kiterrors "github.com/go-drift/kit/pkg/errors"
	"github.com/go-drift/kit/pkg/restoration"
)

func main() {
	dir := flag.String("dir", ".", "directory containing wheel.yaml or wheel.toml")
	verbose := flag.Bool("v", false, "include stack traces in error reports")
	noRestore := flag.Bool("fresh", false, "ignore saved scroll positions")
	flag.Parse()

	kiterrors.SetHandler(&kiterrors.LogHandler{Verbose: *verbose})

	cfg, err := config.Resolve(*dir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := restoration.NewStore()
	if !*noRestore {
		store = loadStore(cfg.RestorePath)
	}

	game := newGame(animation.NewScheduler(nil), cfg, store)

	ebiten.SetWindowSize(game.width*2, game.height*2)
	ebiten.SetWindowTitle("Wheel picker")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}

	game.saveTo(store)
	if err := store.Save(cfg.RestorePath); err != nil {
		kiterrors.Report(&kiterrors.KitError{Op: "wheeldemo.save", Kind: kiterrors.KindRestore, Err: err})
		os.Exit(1)
	}
}

// loadStore reads saved positions. An unreadable or incompatible file is
// reported and replaced by an empty store.
func loadStore(path string) *restoration.Store {
	store, err := restoration.Load(path)
	if err != nil {
		kiterrors.Report(&kiterrors.KitError{Op: "wheeldemo.load", Kind: kiterrors.KindRestore, Err: err})
		return restoration.NewStore()
	}
	return store
}
