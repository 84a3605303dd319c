package wheel

import (
	"fmt"
	"math"

	"github.com/go-drift/kit/pkg/animation"
	kiterrors "github.com/go-drift/kit/pkg/errors"
	"github.com/go-drift/kit/pkg/keyboard"
)

// Props are the per-render inputs of a picker.
type Props[T any] struct {
	// Items is the ordered item list. It is read, never modified.
	Items []T

	// SelectedIndex is the controlled value. Out-of-range values are
	// clamped into [0, len(Items)-1] and reported.
	SelectedIndex int

	// Disabled turns gesture, wheel, tap and key input into no-ops.
	// Programmatic scrolling still works.
	Disabled bool

	// OnChange is called with the newly selected item when a scroll settles
	// on a different item, or when an external SelectedIndex is accepted.
	OnChange func(T)

	// OnImmediateChange is called on every frame in which the item on the
	// selection line changes. Use it for live feedback, not for committing.
	OnImmediateChange func(T)

	// ScrollEffect computes per-item transforms. Nil means CylinderEffect.
	ScrollEffect ScrollEffect

	// Indicator paints the selection window. Nil means DefaultIndicator.
	Indicator Indicator

	// ItemKey returns a stable key for the item at a raw index. Nil keys
	// items by raw index.
	ItemKey func(item T, raw int) any
}

// Picker is a wheel picker over items of type T.
//
// A picker is driven entirely from the UI thread: input handlers,
// Update and the scheduler's Step must not run concurrently.
//
// The picker keeps three change contracts apart:
//   - OnImmediateChange follows the raw position frame by frame.
//   - OnChange fires once per settle, only for a different logical item.
//   - External SelectedIndex values are accepted once, without a feedback
//     loop, and never while the user is dragging.
type Picker[T any] struct {
	props     Props[T]
	opts      Options
	state     *State
	debouncer *animation.Debouncer

	wheelDelta   int
	pendingSync  bool
	pendingReset *int
	immediateRaw int
	mounted      bool
	unsubscribe  []func()
}

// NewPicker creates a picker stepped by s. The initial selection is
// props.SelectedIndex, clamped into range; Mount reports the clamp.
func NewPicker[T any](s *animation.Scheduler, opts Options, props Props[T]) *Picker[T] {
	opts = opts.withDefaults()
	initial := clampInt(props.SelectedIndex, 0, max(len(props.Items)-1, 0))
	p := &Picker[T]{
		props: props,
		opts:  opts,
		state: NewState(s, initial, len(props.Items), opts),
	}
	p.debouncer = animation.NewDebouncer(s, opts.WheelDebounce)
	return p
}

// State returns the picker's scroll state.
func (p *Picker[T]) State() *State { return p.state }

// Props returns the current props.
func (p *Picker[T]) Props() Props[T] { return p.props }

// Options returns the resolved options.
func (p *Picker[T]) Options() Options { return p.opts }

// Mount attaches the picker to its scroll position, corrects the initial
// layout with an instant scroll and runs the first external sync.
func (p *Picker[T]) Mount() {
	if p.mounted {
		return
	}
	p.mounted = true
	if n := len(p.props.Items); n > 0 && p.opts.Restore == nil {
		p.state.ScrollToLogical(p.state.InitialIndex(), n)
	}
	p.immediateRaw = p.state.RawIndex()
	pos := p.state.Position()
	p.unsubscribe = append(p.unsubscribe,
		pos.AddListener(p.onScroll),
		pos.AddSettleListener(p.onSettle),
	)
	p.reconcile()
}

// Dispose cancels pending work and detaches all listeners.
func (p *Picker[T]) Dispose() {
	p.debouncer.Cancel()
	p.state.Position().Dispose()
	for _, fn := range p.unsubscribe {
		fn()
	}
	p.unsubscribe = nil
	p.mounted = false
}

// Update applies new props. A changed SelectedIndex or item list is
// reconciled against the last notified value.
func (p *Picker[T]) Update(props Props[T]) {
	p.props = props
	p.state.SetItemCount(len(props.Items))
	if p.mounted {
		p.reconcile()
	}
}

// Layout records measured extents. It is the recomputation point after a
// layout pass.
func (p *Picker[T]) Layout(itemExtent, viewportExtent float64) {
	p.state.SetLayout(itemExtent, viewportExtent)
}

// SelectedItem returns the item of the last accepted change.
func (p *Picker[T]) SelectedItem() (T, bool) {
	return p.itemAt(p.state.LastNotifiedRawIndex())
}

// CurrentItem returns the item on the selection line right now.
func (p *Picker[T]) CurrentItem() (T, bool) {
	return p.itemAt(p.state.RawIndex())
}

// Snapshot returns the persisted form of the picker state.
func (p *Picker[T]) Snapshot() Snapshot {
	return p.state.Snapshot()
}

// ResetTo moves to index without notifying, for a picker reused for a
// different value. During a drag the reset waits until the gesture settles
// and ResetTo returns nil.
func (p *Picker[T]) ResetTo(index int) *animation.Job {
	if p.state.IsDragging() {
		p.pendingReset = &index
		return nil
	}
	p.pendingReset = nil
	n := len(p.props.Items)
	if n == 0 {
		return nil
	}
	p.pendingSync = false
	return p.state.ResetToLogical(clampSelected("wheel.Picker.ResetTo", index, n), n)
}

// OnDragStart begins a drag gesture.
func (p *Picker[T]) OnDragStart() {
	if p.props.Disabled {
		return
	}
	p.debouncer.Cancel()
	p.wheelDelta = 0
	p.state.OnDragStart()
}

// OnDrag applies a pointer delta in pixels. Positive deltas pull the
// content down, toward smaller indices.
func (p *Picker[T]) OnDrag(delta float64) {
	if p.props.Disabled || !p.state.IsDragging() {
		return
	}
	p.state.OnDrag(delta)
}

// OnDragEnd releases the drag with a pointer velocity in pixels per
// second; use Velocity for the tracked value.
func (p *Picker[T]) OnDragEnd(velocity float64) {
	if !p.state.IsDragging() {
		return
	}
	p.state.OnDragEnd(velocity)
}

// OnDragCancel ends a drag without momentum, snapping to the nearest item.
func (p *Picker[T]) OnDragCancel() {
	if !p.state.IsDragging() {
		return
	}
	p.state.Position().CancelDrag()
}

// Velocity returns the tracked pointer velocity of the current drag.
func (p *Picker[T]) Velocity() float64 {
	return p.state.Velocity()
}

// OnItemTap animates to the tapped logical index.
func (p *Picker[T]) OnItemTap(index int) {
	n := len(p.props.Items)
	if p.props.Disabled || n == 0 || p.state.IsDragging() {
		return
	}
	p.state.AnimateToLogical(clampInt(index, 0, n-1), n)
}

// OnWheel records mouse-wheel ticks; positive ticks move toward larger
// indices. A burst of ticks ends after the debounce window and moves
// exactly one item in the burst's net direction.
func (p *Picker[T]) OnWheel(ticks int) {
	if p.props.Disabled || ticks == 0 || len(p.props.Items) == 0 || p.state.IsDragging() {
		return
	}
	p.wheelDelta += ticks
	p.debouncer.Trigger(p.flushWheel)
}

func (p *Picker[T]) flushWheel() {
	delta := p.wheelDelta
	p.wheelDelta = 0
	if delta == 0 || len(p.props.Items) == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	p.state.animateToRaw(p.state.RawIndex() + step)
}

// HandleKey moves the selection for arrow, page, home and end keys.
func (p *Picker[T]) HandleKey(ev keyboard.Event) bool {
	n := len(p.props.Items)
	if p.props.Disabled || n == 0 || p.state.IsDragging() {
		return false
	}
	raw := p.state.RawIndex()
	switch ev.Key {
	case keyboard.KeyUp:
		p.state.animateToRaw(raw - 1)
	case keyboard.KeyDown:
		p.state.animateToRaw(raw + 1)
	case keyboard.KeyPageUp:
		p.state.animateToRaw(raw - p.opts.VisibleItems)
	case keyboard.KeyPageDown:
		p.state.animateToRaw(raw + p.opts.VisibleItems)
	case keyboard.KeyHome:
		p.state.AnimateToLogical(0, n)
	case keyboard.KeyEnd:
		p.state.AnimateToLogical(n-1, n)
	default:
		return false
	}
	return true
}

// AttachKeyboard registers the picker on reg until the returned function
// is called or the picker is disposed.
func (p *Picker[T]) AttachKeyboard(reg *keyboard.Registry) func() {
	remove := reg.Add(p.HandleKey)
	p.unsubscribe = append(p.unsubscribe, remove)
	return remove
}

// onScroll is the per-frame recomputation point: it fires
// OnImmediateChange when the raw index moved.
func (p *Picker[T]) onScroll() {
	raw := p.state.RawIndex()
	if raw == p.immediateRaw {
		return
	}
	p.immediateRaw = raw
	if p.props.OnImmediateChange == nil {
		return
	}
	if item, ok := p.itemAt(raw); ok {
		kiterrors.Guard("wheel.Picker.OnImmediateChange", func() {
			p.props.OnImmediateChange(item)
		})
	}
}

// onSettle runs once per fling or animation that comes to rest.
func (p *Picker[T]) onSettle(raw int) {
	p.commit(raw)
	if p.pendingReset != nil && !p.state.IsDragging() {
		p.ResetTo(*p.pendingReset)
		return
	}
	if p.pendingSync && !p.state.IsDragging() {
		p.pendingSync = false
		p.reconcile()
	}
}

// commit is the change dispatcher: it notifies only when raw maps to a
// different logical item than the last notification, and records raw
// before the callback runs.
func (p *Picker[T]) commit(raw int) bool {
	n := len(p.props.Items)
	if n == 0 {
		return false
	}
	next, err := ToLogical(raw, p.state.infinite, n)
	if err != nil || next < 0 || next >= n {
		return false
	}
	if prev, _ := p.state.LastNotifiedLogicalIndex(n); prev == next {
		return false
	}
	p.state.lastNotifiedRaw = raw
	p.notifyChange(p.props.Items[next])
	return true
}

func (p *Picker[T]) notifyChange(item T) {
	if p.props.OnChange == nil {
		return
	}
	kiterrors.Guard("wheel.Picker.OnChange", func() {
		p.props.OnChange(item)
	})
}

// reconcile is the external-sync controller.
func (p *Picker[T]) reconcile() {
	n := len(p.props.Items)
	if n == 0 {
		return
	}
	target := clampSelected("wheel.Picker.reconcile", p.props.SelectedIndex, n)
	if current, _ := p.state.LastNotifiedLogicalIndex(n); current == target {
		return
	}
	if p.state.IsDragging() {
		p.pendingSync = true
		return
	}
	raw := p.state.rawTarget(target, n)
	p.state.lastNotifiedRaw = raw
	p.state.animateToRaw(raw)
	p.notifyChange(p.props.Items[target])
}

// VisibleItems lays out the items intersecting the viewport, nearest the
// top first, with their keys and scroll-effect transforms.
func (p *Picker[T]) VisibleItems() []VisibleItem {
	n := len(p.props.Items)
	item := p.state.ItemExtent()
	viewport := p.state.ViewportExtent()
	if n == 0 || item <= 0 {
		return nil
	}
	effect := p.props.ScrollEffect
	if effect == nil {
		effect = CylinderEffect
	}
	reach := viewport/2 + item/2
	span := int(math.Ceil(reach/item)) + 1
	pos := p.state.Position()
	minRaw, maxRaw := pos.Extents()

	out := make([]VisibleItem, 0, 2*span+1)
	for raw := pos.Index() - span; raw <= pos.Index()+span; raw++ {
		if raw < minRaw || raw > maxRaw {
			continue
		}
		offset := pos.ItemOffset(raw)
		if math.Abs(offset) >= reach {
			continue
		}
		index, err := ToLogical(raw, p.state.infinite, n)
		if err != nil || index < 0 || index >= n {
			continue
		}
		distance := normalizedDistance(offset, item, viewport)
		out = append(out, VisibleItem{
			Raw:       raw,
			Index:     index,
			Key:       p.itemKey(index, raw),
			Offset:    offset,
			Distance:  distance,
			Transform: effect(index, distance, p.state),
		})
	}
	return out
}

// SelectionWindow returns the rectangle of the selection line for a
// picker drawn width pixels wide.
func (p *Picker[T]) SelectionWindow(width float64) Rect {
	item := p.state.ItemExtent()
	return Rect{X: 0, Y: p.state.ViewportExtent()/2 - item/2, W: width, H: item}
}

// PaintIndicator runs the indicator hook on c.
func (p *Picker[T]) PaintIndicator(c Canvas) {
	indicator := p.props.Indicator
	if indicator == nil {
		indicator = DefaultIndicator
	}
	width, _ := c.Size()
	indicator(c, p.SelectionWindow(width), p.state)
}

func (p *Picker[T]) itemKey(index, raw int) any {
	if p.props.ItemKey == nil {
		return raw
	}
	return p.props.ItemKey(p.props.Items[index], raw)
}

func (p *Picker[T]) itemAt(raw int) (T, bool) {
	var zero T
	n := len(p.props.Items)
	if n == 0 {
		return zero, false
	}
	index, err := ToLogical(raw, p.state.infinite, n)
	if err != nil || index < 0 || index >= n {
		return zero, false
	}
	return p.props.Items[index], true
}

// clampSelected clamps an external index into [0, n-1], reporting values
// that needed it. n must be positive.
func clampSelected(op string, index, n int) int {
	if index >= 0 && index < n {
		return index
	}
	kiterrors.Report(&kiterrors.KitError{
		Op:   op,
		Kind: kiterrors.KindRange,
		Err:  fmt.Errorf("clamped: %w", &kiterrors.RangeError{Name: "selected index", Value: index, Min: 0, Max: n - 1}),
	})
	return clampInt(index, 0, n-1)
}
