package wheel

import (
	"time"

	"github.com/go-drift/kit/pkg/scroll"
)

const (
	// DefaultItemExtent is the item height used when Options.ItemExtent is zero.
	DefaultItemExtent = 40.0
	// DefaultVisibleItems is the number of items shown when neither
	// ViewportExtent nor VisibleItems is set.
	DefaultVisibleItems = 5
	// DefaultAnimationDuration is the programmatic scroll duration.
	DefaultAnimationDuration = 250 * time.Millisecond
	// DefaultWheelDebounce is the quiet period that ends a mouse-wheel burst.
	DefaultWheelDebounce = 250 * time.Millisecond
)

// Options configures a picker for its whole lifetime.
type Options struct {
	// Infinite wraps the items endlessly. It cannot change after creation.
	Infinite bool

	// ItemExtent is the main-axis size of one item.
	ItemExtent float64

	// ViewportExtent is the main-axis size of the picker. Zero means
	// ItemExtent * VisibleItems.
	ViewportExtent float64

	// VisibleItems is used when ViewportExtent is zero, and as the page
	// size for PageUp/PageDown.
	VisibleItems int

	// Physics controls drag and fling. Nil means scroll.ClampingPhysics.
	Physics scroll.Physics

	// AnimationDuration is used for taps, keys, wheel steps and external
	// sync.
	AnimationDuration time.Duration

	// WheelDebounce is the trailing debounce for mouse-wheel ticks.
	WheelDebounce time.Duration

	// Restore, when set and its Infinite flag matches, positions the picker
	// at the saved raw index instead of the selected index.
	Restore *Snapshot
}

func (o Options) withDefaults() Options {
	if o.ItemExtent <= 0 {
		o.ItemExtent = DefaultItemExtent
	}
	if o.VisibleItems <= 0 {
		o.VisibleItems = DefaultVisibleItems
	}
	if o.ViewportExtent <= 0 {
		o.ViewportExtent = o.ItemExtent * float64(o.VisibleItems)
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = DefaultAnimationDuration
	}
	if o.WheelDebounce <= 0 {
		o.WheelDebounce = DefaultWheelDebounce
	}
	return o
}

// Snapshot is the persisted form of a picker's scroll state. It is enough
// to rebuild the State and derive the logical selection without replaying
// gestures.
type Snapshot struct {
	Infinite bool `yaml:"infinite"`
	RawIndex int  `yaml:"raw_index"`
}
