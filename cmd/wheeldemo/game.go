package main

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/go-drift/kit/cmd/wheeldemo/internal/config"
	"github.com/go-drift/kit/cmd/wheeldemo/internal/datepicker"
	"github.com/go-drift/kit/pkg/animation"
	"github.com/go-drift/kit/pkg/keyboard"
	"github.com/go-drift/kit/pkg/restoration"
)

var keyMap = map[ebiten.Key]keyboard.Key{
	ebiten.KeyArrowUp:   keyboard.KeyUp,
	ebiten.KeyArrowDown: keyboard.KeyDown,
	ebiten.KeyPageUp:    keyboard.KeyPageUp,
	ebiten.KeyPageDown:  keyboard.KeyPageDown,
	ebiten.KeyHome:      keyboard.KeyHome,
	ebiten.KeyEnd:       keyboard.KeyEnd,
}

// game adapts a date picker to ebiten's Game interface.
type game struct {
	sched  *animation.Scheduler
	model  *datepicker.Model
	frame  *image.RGBA
	width  int
	height int
}

func newGame(s *animation.Scheduler, cfg *config.Resolved, store *restoration.Store) *game {
	model := datepicker.New(s, cfg.Options(), store, datepicker.DateOf(time.Now()))
	w, h := model.Size()
	return &game{
		sched:  s,
		model:  model,
		frame:  image.NewRGBA(image.Rect(0, 0, w, h)),
		width:  w,
		height: h,
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.model.PointerDown(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.model.PointerUp(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.model.PointerMove(x, y)
	}

	// Wheel up shows earlier values.
	if _, wy := ebiten.Wheel(); wy > 0 {
		g.model.Wheel(x, y, -1)
	} else if wy < 0 {
		g.model.Wheel(x, y, 1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.model.MoveFocus(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.model.MoveFocus(1)
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for ek, key := range keyMap {
		// Held keys repeat every 6 ticks after half a second.
		if d := inpututil.KeyPressDuration(ek); d == 1 || d > 30 && d%6 == 0 {
			g.model.Key(keyboard.Event{Key: key, Shift: shift})
		}
	}

	g.sched.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.model.Render(g.frame)
	screen.WritePixels(g.frame.Pix)
	ebitenutil.DebugPrintAt(screen, g.model.LiveDate().String(), datepicker.Gap, 8)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func (g *game) saveTo(store *restoration.Store) {
	g.model.SaveTo(store)
	g.model.Dispose()
}
