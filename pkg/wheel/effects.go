package wheel

import (
	"image/color"
	"math"
)

// ItemTransform is the presentation of one item at its scroll distance.
type ItemTransform struct {
	// Scale multiplies the item size around its center.
	Scale float64
	// Alpha is the item opacity in [0, 1].
	Alpha float64
	// RotationX tilts the item around the horizontal axis, in degrees.
	RotationX float64
	// TranslateY shifts the item along the main axis, in pixels.
	TranslateY float64
}

// IdentityTransform leaves an item untouched.
var IdentityTransform = ItemTransform{Scale: 1, Alpha: 1}

// ScrollEffect computes the transform of the item with logical index at a
// normalized distance from the selection line: 0 on the line, ±1 at the
// viewport edges. It must be a pure function of its inputs.
type ScrollEffect func(index int, distance float64, s *State) ItemTransform

// Rect is an axis-aligned rectangle in picker coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Canvas is the drawing surface handed to an [Indicator].
type Canvas interface {
	Size() (width, height float64)
	FillRect(r Rect, c color.Color)
}

// Indicator paints the selection window decoration. It must be a pure
// function of its inputs.
type Indicator func(c Canvas, window Rect, s *State)

// CylinderEffect shrinks, fades and tilts items away from the selection
// line, like a drum.
func CylinderEffect(_ int, distance float64, _ *State) ItemTransform {
	d := math.Abs(distance)
	return ItemTransform{
		Scale:     1 - 0.2*d,
		Alpha:     1 - 0.65*d,
		RotationX: 60 * distance,
	}
}

// FlatEffect only fades items away from the selection line.
func FlatEffect(_ int, distance float64, _ *State) ItemTransform {
	return ItemTransform{Scale: 1, Alpha: 1 - 0.5*math.Abs(distance)}
}

// BarsIndicator draws a line of the given thickness above and below the
// selection window.
func BarsIndicator(c color.Color, thickness float64) Indicator {
	return func(canvas Canvas, window Rect, _ *State) {
		canvas.FillRect(Rect{X: window.X, Y: window.Y, W: window.W, H: thickness}, c)
		canvas.FillRect(Rect{X: window.X, Y: window.Y + window.H - thickness, W: window.W, H: thickness}, c)
	}
}

// BandIndicator fills the selection window.
func BandIndicator(c color.Color) Indicator {
	return func(canvas Canvas, window Rect, _ *State) {
		canvas.FillRect(window, c)
	}
}

// DefaultIndicator is a pair of thin grey bars.
var DefaultIndicator = BarsIndicator(color.Gray{Y: 0x99}, 1)

// VisibleItem is one laid-out item of the current frame.
type VisibleItem struct {
	// Raw is the item's raw index.
	Raw int
	// Index is the item's logical index.
	Index int
	// Key is the virtualization key from Props.ItemKey.
	Key any
	// Offset is the pixel distance of the item center from the selection line.
	Offset float64
	// Distance is Offset normalized to [-1, 1].
	Distance float64
	// Transform is the scroll effect output.
	Transform ItemTransform
}

// normalizedDistance maps a pixel offset into [-1, 1] using half the
// viewport plus half an item as the unit.
func normalizedDistance(offset, itemExtent, viewportExtent float64) float64 {
	unit := viewportExtent/2 + itemExtent/2
	if unit <= 0 {
		return 0
	}
	return max(-1, min(1, offset/unit))
}
