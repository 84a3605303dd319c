// Package raster draws wheel pickers into in-memory images.
//
// The output is a pure function of the picker state, so frames can be
// compared byte for byte in tests and pushed to any pixel surface by a host.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/go-drift/kit/pkg/wheel"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default colors.
var (
	DefaultBackground = color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	DefaultForeground = color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
)

// Canvas adapts an *image.RGBA to [wheel.Canvas]. Picker coordinates map
// one to one onto pixels from the image origin.
type Canvas struct {
	Img *image.RGBA
}

// Size returns the image size in pixels.
func (c Canvas) Size() (float64, float64) {
	b := c.Img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// FillRect composites a solid rectangle over the image.
func (c Canvas) FillRect(r wheel.Rect, col color.Color) {
	rect := c.toImage(r)
	if rect.Empty() {
		return
	}
	draw.Draw(c.Img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c Canvas) toImage(r wheel.Rect) image.Rectangle {
	rect := image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	).Add(c.Img.Bounds().Min)
	return rect.Intersect(c.Img.Bounds())
}

// Renderer draws a picker frame: background, visible items and the
// selection indicator.
//
// Label bitmaps are cached by item key and label text, so a key that
// starts mapping to a different item after the item list changes is
// rendered again. Keys returned by Props.ItemKey must be comparable.
// Entries for items that were not visible in the last frame are dropped.
type Renderer[T any] struct {
	Background color.Color
	Foreground color.Color

	// Label formats an item. Nil uses fmt.Sprint.
	Label func(T) string

	face  font.Face
	cache map[labelKey]*image.NRGBA
}

type labelKey struct {
	item any
	text string
}

// NewRenderer returns a renderer using the built-in 7x13 bitmap font.
func NewRenderer[T any]() *Renderer[T] {
	return &Renderer[T]{
		Background: DefaultBackground,
		Foreground: DefaultForeground,
		face:       basicfont.Face7x13,
		cache:      make(map[labelKey]*image.NRGBA),
	}
}

// CacheLen returns the number of cached label bitmaps.
func (r *Renderer[T]) CacheLen() int { return len(r.cache) }

// Image allocates an image of the given width and the picker's viewport
// height and renders into it.
func (r *Renderer[T]) Image(p *wheel.Picker[T], width int) *image.RGBA {
	height := int(math.Ceil(p.State().ViewportExtent()))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	r.Render(p, dst)
	return dst
}

// Render draws the current frame of p into dst.
func (r *Renderer[T]) Render(p *wheel.Picker[T], dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	canvas := Canvas{Img: dst}
	width, _ := canvas.Size()
	center := p.State().ViewportExtent() / 2
	items := p.Props().Items

	seen := make(map[labelKey]struct{})
	for _, vi := range p.VisibleItems() {
		key := labelKey{item: vi.Key, text: r.format(items[vi.Index])}
		seen[key] = struct{}{}
		label := r.label(key)
		r.drawItem(dst, label, width/2, center+vi.Offset+vi.Transform.TranslateY, vi.Transform)
	}
	for key := range r.cache {
		if _, ok := seen[key]; !ok {
			delete(r.cache, key)
		}
	}

	p.PaintIndicator(canvas)
}

func (r *Renderer[T]) drawItem(dst *image.RGBA, label *image.NRGBA, cx, cy float64, tf wheel.ItemTransform) {
	alpha := math.Max(0, math.Min(1, tf.Alpha))
	if alpha == 0 || tf.Scale <= 0 {
		return
	}
	b := label.Bounds()
	w := int(math.Round(float64(b.Dx()) * tf.Scale))
	h := int(math.Round(float64(b.Dy()) * tf.Scale * math.Abs(math.Cos(tf.RotationX*math.Pi/180))))
	if w <= 0 || h <= 0 {
		return
	}
	mask := label
	if w != b.Dx() || h != b.Dy() {
		mask = imaging.Resize(label, w, h, imaging.Lanczos)
	}

	x := int(math.Round(cx - float64(w)/2))
	y := int(math.Round(cy - float64(h)/2))
	rect := image.Rect(x, y, x+w, y+h).Add(dst.Bounds().Min)

	fr, fg, fb, _ := r.Foreground.RGBA()
	src := image.NewUniform(color.NRGBA{
		R: uint8(fr >> 8), G: uint8(fg >> 8), B: uint8(fb >> 8),
		A: uint8(math.Round(alpha * 0xff)),
	})
	draw.DrawMask(dst, rect, src, image.Point{}, mask, image.Point{}, draw.Over)
}

// label returns the cached bitmap for key, rendering it on a miss. The
// bitmap is white text whose alpha channel is the glyph coverage.
func (r *Renderer[T]) label(key labelKey) *image.NRGBA {
	if img, ok := r.cache[key]; ok {
		return img
	}
	text := key.text
	metrics := r.face.Metrics()
	drawer := &font.Drawer{Face: r.face, Src: image.White}
	width := drawer.MeasureString(text).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	img := image.NewNRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	drawer.Dst = img
	drawer.Dot = fixed.P(0, metrics.Ascent.Ceil())
	drawer.DrawString(text)
	r.cache[key] = img
	return img
}

func (r *Renderer[T]) format(item T) string {
	if r.Label != nil {
		return r.Label(item)
	}
	return fmt.Sprint(item)
}
