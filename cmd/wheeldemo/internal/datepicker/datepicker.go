// Package datepicker composes three wheel pickers into a month/day/year
// date picker driven by pointer, wheel and key input in pixel coordinates.
package datepicker

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/go-drift/kit/pkg/animation"
	"github.com/go-drift/kit/pkg/keyboard"
	"github.com/go-drift/kit/pkg/restoration"
	"github.com/go-drift/kit/pkg/wheel"
	"github.com/go-drift/kit/pkg/wheel/raster"
	"golang.org/x/image/draw"
)

// Year range offered by the year column.
const (
	FirstYear = 1900
	LastYear  = 2100
)

// Layout constants, in pixels.
const (
	ColumnWidth = 96
	Gap         = 16
	Header      = 32

	// tapSlop is how far a pointer may travel and still count as a tap.
	tapSlop = 4
)

// Restoration IDs of the three columns.
const (
	MonthID = "month"
	DayID   = "day"
	YearID  = "year"
)

var (
	background = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	focused    = color.RGBA{R: 0xe3, G: 0xf2, B: 0xfd, A: 0xff}
)

// Date is a calendar date with a 1-based month and day.
type Date struct {
	Year, Month, Day int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DateOf returns the date part of t.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// DaysIn returns the number of days in the month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

type column struct {
	id       string
	picker   *wheel.Picker[int]
	props    wheel.Props[int]
	renderer *raster.Renderer[int]
	rect     image.Rectangle
	live     int
}

// Model is a date picker. It is not safe for concurrent use; drive it from
// the frame loop that steps its scheduler.
type Model struct {
	// OnDateChange is called with the committed date after any column
	// settles on a new value.
	OnDateChange func(Date)

	keys    keyboard.Registry
	cols    []*column
	focus   int
	detach  func()
	date    Date
	width   int
	height  int
	extent  float64
	pointer pointerState
}

type pointerState struct {
	col      *column
	startY   float64
	lastY    float64
	traveled float64
}

// New builds a date picker stepped by s. Saved positions in store take
// precedence over initial.
func New(s *animation.Scheduler, opts wheel.Options, store *restoration.Store, initial Date) *Model {
	if store == nil {
		store = restoration.NewStore()
	}
	infinite := opts.Infinite
	yearOpts := opts
	yearOpts.Infinite = false

	m := &Model{date: clampDate(initial)}
	m.restoreDate(store, infinite)

	monthNames := func(v int) string { return time.Month(v).String()[:3] }
	m.cols = []*column{
		m.newColumn(s, MonthID, opts, store, rangeItems(1, 12), m.date.Month-1, monthNames, func(v int) {
			m.date.Month = v
			m.syncDays()
		}),
		m.newColumn(s, DayID, opts, store, rangeItems(1, DaysIn(m.date.Year, m.date.Month)), m.date.Day-1, nil, func(v int) {
			m.date.Day = v
			m.changed()
		}),
		m.newColumn(s, YearID, yearOpts, store, rangeItems(FirstYear, LastYear), m.date.Year-FirstYear, nil, func(v int) {
			m.date.Year = v
			m.syncDays()
		}),
	}

	m.extent = m.cols[0].picker.State().ItemExtent()
	viewport := int(math.Ceil(m.cols[0].picker.State().ViewportExtent()))
	for i, col := range m.cols {
		x := Gap + i*(ColumnWidth+Gap)
		col.rect = image.Rect(x, Header, x+ColumnWidth, Header+viewport)
		col.picker.Mount()
	}
	m.width = Gap + len(m.cols)*(ColumnWidth+Gap)
	m.height = Header + viewport + Gap
	m.setFocus(0)
	return m
}

func (m *Model) newColumn(s *animation.Scheduler, id string, opts wheel.Options, store *restoration.Store,
	items []int, selected int, label func(int) string, onChange func(int)) *column {
	col := &column{id: id}
	opts.Restore = store.Restore(id)
	col.props = wheel.Props[int]{
		Items:             items,
		SelectedIndex:     selected,
		OnChange:          onChange,
		OnImmediateChange: func(v int) { col.live = v },
	}
	col.live = items[selected]
	col.picker = wheel.NewPicker(s, opts, col.props)
	col.renderer = raster.NewRenderer[int]()
	col.renderer.Label = label
	col.renderer.Background = background
	return col
}

// restoreDate derives the starting date from saved positions so the
// controlled selection agrees with the restored scroll state.
func (m *Model) restoreDate(store *restoration.Store, infinite bool) {
	if snap, ok := store.Get(YearID); ok && !snap.Infinite {
		m.date.Year = FirstYear + clampInt(snap.RawIndex, 0, LastYear-FirstYear)
	}
	if snap, ok := store.Get(MonthID); ok && snap.Infinite == infinite {
		if v, err := wheel.ToLogical(snap.RawIndex, infinite, 12); err == nil {
			m.date.Month = clampInt(v, 0, 11) + 1
		}
	}
	days := DaysIn(m.date.Year, m.date.Month)
	if snap, ok := store.Get(DayID); ok && snap.Infinite == infinite {
		if v, err := wheel.ToLogical(snap.RawIndex, infinite, days); err == nil {
			m.date.Day = clampInt(v, 0, days-1) + 1
		}
	}
	m.date = clampDate(m.date)
}

// syncDays rebuilds the day column after the month or year changed.
func (m *Model) syncDays() {
	days := DaysIn(m.date.Year, m.date.Month)
	m.date.Day = min(m.date.Day, days)
	col := m.cols[1]
	col.props.Items = rangeItems(1, days)
	col.props.SelectedIndex = m.date.Day - 1
	col.picker.Update(col.props)
	m.changed()
}

func (m *Model) changed() {
	for _, col := range m.cols {
		col.props.SelectedIndex = m.selectedIndex(col)
	}
	if m.OnDateChange != nil {
		m.OnDateChange(m.date)
	}
}

func (m *Model) selectedIndex(col *column) int {
	switch col.id {
	case MonthID:
		return m.date.Month - 1
	case DayID:
		return m.date.Day - 1
	default:
		return m.date.Year - FirstYear
	}
}

// Date returns the committed date.
func (m *Model) Date() Date { return m.date }

// LiveDate returns the date currently under the selection lines, including
// columns that are still moving.
func (m *Model) LiveDate() Date {
	return Date{Month: m.cols[0].live, Day: m.cols[1].live, Year: m.cols[2].live}
}

// SetDate moves all columns to d as an external update.
func (m *Model) SetDate(d Date) {
	d = clampDate(d)
	m.date = d
	m.cols[0].props.SelectedIndex = d.Month - 1
	m.cols[0].picker.Update(m.cols[0].props)
	m.cols[2].props.SelectedIndex = d.Year - FirstYear
	m.cols[2].picker.Update(m.cols[2].props)
	m.date.Day = d.Day
	m.syncDays()
}

// Size returns the pixel size of the rendered picker.
func (m *Model) Size() (width, height int) { return m.width, m.height }

// Focus returns the index of the column receiving key input.
func (m *Model) Focus() int { return m.focus }

// Picker returns the wheel picker of a column.
func (m *Model) Picker(i int) *wheel.Picker[int] { return m.cols[i].picker }

// MoveFocus moves key focus by delta columns, wrapping around.
func (m *Model) MoveFocus(delta int) {
	n := len(m.cols)
	m.setFocus(((m.focus+delta)%n + n) % n)
}

func (m *Model) setFocus(i int) {
	if m.detach != nil {
		m.detach()
	}
	m.cols[m.focus].renderer.Background = background
	m.focus = i
	m.cols[i].renderer.Background = focused
	m.detach = m.cols[i].picker.AttachKeyboard(&m.keys)
}

// Key routes a key event to the focused column.
func (m *Model) Key(ev keyboard.Event) bool {
	return m.keys.Notify(ev)
}

// PointerDown starts a drag on the column under (x, y).
func (m *Model) PointerDown(x, y float64) {
	col := m.columnAt(x, y)
	if col == nil {
		return
	}
	for i, c := range m.cols {
		if c == col && i != m.focus {
			m.setFocus(i)
		}
	}
	m.pointer = pointerState{col: col, startY: y, lastY: y}
	col.picker.OnDragStart()
}

// PointerMove drags the active column.
func (m *Model) PointerMove(_, y float64) {
	col := m.pointer.col
	if col == nil || y == m.pointer.lastY {
		return
	}
	col.picker.OnDrag(y - m.pointer.lastY)
	m.pointer.traveled = max(m.pointer.traveled, math.Abs(y-m.pointer.startY))
	m.pointer.lastY = y
}

// PointerUp releases the drag with the tracked velocity, or taps the item
// under the pointer if it barely moved.
func (m *Model) PointerUp(_, y float64) {
	ptr := m.pointer
	m.pointer = pointerState{}
	col := ptr.col
	if col == nil {
		return
	}
	if ptr.traveled > tapSlop || col.picker.State().Position().Fraction() != 0 {
		col.picker.OnDragEnd(col.picker.Velocity())
		return
	}
	col.picker.OnDragEnd(0)
	if index, ok := m.itemAt(col, y); ok {
		col.picker.OnItemTap(index)
	}
}

// Wheel sends wheel ticks to the column under (x, y). Positive ticks move
// toward later values.
func (m *Model) Wheel(x, y float64, ticks int) {
	if col := m.columnAt(x, y); col != nil {
		col.picker.OnWheel(ticks)
	}
}

func (m *Model) columnAt(x, y float64) *column {
	pt := image.Pt(int(math.Floor(x)), int(math.Floor(y)))
	for _, col := range m.cols {
		if pt.In(col.rect) {
			return col
		}
	}
	return nil
}

func (m *Model) itemAt(col *column, y float64) (int, bool) {
	center := float64(col.rect.Min.Y) + col.picker.State().ViewportExtent()/2
	for _, vi := range col.picker.VisibleItems() {
		if math.Abs(y-(center+vi.Offset)) < m.extent/2 {
			return vi.Index, true
		}
	}
	return 0, false
}

// Render draws the picker into dst, which must be at least Size() large.
func (m *Model) Render(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(raster.DefaultBackground), image.Point{}, draw.Src)
	for _, col := range m.cols {
		sub, ok := dst.SubImage(col.rect.Add(dst.Bounds().Min)).(*image.RGBA)
		if !ok {
			continue
		}
		col.renderer.Render(col.picker, sub)
	}
}

// SaveTo stores the scroll position of every column.
func (m *Model) SaveTo(store *restoration.Store) {
	for _, col := range m.cols {
		store.Put(col.id, col.picker.Snapshot())
	}
}

// Dispose releases all pickers.
func (m *Model) Dispose() {
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
	for _, col := range m.cols {
		col.picker.Dispose()
	}
}

func rangeItems(first, last int) []int {
	items := make([]int, 0, last-first+1)
	for v := first; v <= last; v++ {
		items = append(items, v)
	}
	return items
}

func clampDate(d Date) Date {
	d.Year = clampInt(d.Year, FirstYear, LastYear)
	d.Month = clampInt(d.Month, 1, 12)
	d.Day = clampInt(d.Day, 1, DaysIn(d.Year, d.Month))
	return d
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
