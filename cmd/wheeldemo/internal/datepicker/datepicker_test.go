package datepicker

import (
	"bytes"
	"image"
	"testing"
	"time"

	"github.com/go-drift/kit/pkg/keyboard"
	"github.com/go-drift/kit/pkg/restoration"
	kittest "github.com/go-drift/kit/pkg/testing"
	"github.com/go-drift/kit/pkg/wheel"
)

var testOptions = wheel.Options{Infinite: true, ItemExtent: 40, VisibleItems: 5}

func newModel(t *testing.T, store *restoration.Store, initial Date) (*kittest.Driver, *Model) {
	t.Helper()
	d := kittest.NewDriverWithT(t)
	m := New(d.Scheduler, testOptions, store, initial)
	t.Cleanup(m.Dispose)
	return d, m
}

func settle(t *testing.T, d *kittest.Driver) {
	t.Helper()
	if err := d.PumpAndSettle(5 * time.Second); err != nil {
		t.Fatal(err)
	}
}

// center returns the pixel center of column i's selection line.
func center(i int) (float64, float64) {
	return float64(Gap + i*(ColumnWidth+Gap) + ColumnWidth/2), Header + 100
}

func TestDaysIn(t *testing.T) {
	tests := []struct{ year, month, want int }{
		{2023, 1, 31},
		{2023, 2, 28},
		{2024, 2, 29},
		{1900, 2, 28},
		{2000, 2, 29},
		{2023, 4, 30},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestNew_Initial(t *testing.T) {
	_, m := newModel(t, nil, Date{2023, 1, 31})

	if got := m.Date(); got != (Date{2023, 1, 31}) {
		t.Errorf("Date() = %v", got)
	}
	if got := m.LiveDate(); got != (Date{2023, 1, 31}) {
		t.Errorf("LiveDate() = %v", got)
	}
	w, h := m.Size()
	if w != Gap+3*(ColumnWidth+Gap) || h != Header+200+Gap {
		t.Errorf("Size() = %d, %d", w, h)
	}
}

func TestNew_ClampsInitialDate(t *testing.T) {
	_, m := newModel(t, nil, Date{1800, 2, 30})
	if got := m.Date(); got != (Date{FirstYear, 2, 28}) {
		t.Errorf("Date() = %v, want %v", got, Date{FirstYear, 2, 28})
	}
}

func TestKey_MonthChangeClampsDay(t *testing.T) {
	d, m := newModel(t, nil, Date{2023, 1, 31})
	var last Date
	m.OnDateChange = func(date Date) { last = date }

	if !m.Key(keyboard.Event{Key: keyboard.KeyDown}) {
		t.Fatal("focused month column did not handle the key")
	}
	settle(t, d)

	want := Date{2023, 2, 28}
	if got := m.Date(); got != want {
		t.Errorf("Date() = %v, want %v", got, want)
	}
	if last != want {
		t.Errorf("OnDateChange got %v, want %v", last, want)
	}
	if got := len(m.Picker(1).Props().Items); got != 28 {
		t.Errorf("day items = %d, want 28", got)
	}
	if got := m.LiveDate(); got != want {
		t.Errorf("LiveDate() = %v, want %v", got, want)
	}
}

func TestPointer_DragYear(t *testing.T) {
	d, m := newModel(t, nil, Date{2023, 1, 31})
	x, y := center(2)

	m.PointerDown(x, y)
	m.PointerMove(x, y-40)
	m.PointerUp(x, y-40)
	settle(t, d)

	if got := m.Date(); got != (Date{2024, 1, 31}) {
		t.Errorf("Date() = %v, want 2024-01-31", got)
	}
	if m.Focus() != 2 {
		t.Errorf("Focus() = %d, want 2", m.Focus())
	}
}

func TestPointer_TapWrapsDay(t *testing.T) {
	d, m := newModel(t, nil, Date{2023, 1, 31})
	x, y := center(1)

	m.PointerDown(x, y+40)
	m.PointerUp(x, y+40)
	settle(t, d)

	if got := m.Date(); got != (Date{2023, 1, 1}) {
		t.Errorf("Date() = %v, want 2023-01-01", got)
	}
}

func TestWheel_StepsColumnUnderPointer(t *testing.T) {
	d, m := newModel(t, nil, Date{2023, 3, 15})
	x, y := center(0)

	m.Wheel(x, y, -1)
	m.Wheel(x, y, -1)
	m.Wheel(0, 0, 1)
	settle(t, d)

	if got := m.Date(); got != (Date{2023, 2, 15}) {
		t.Errorf("Date() = %v, want 2023-02-15", got)
	}
}

func TestSetDate(t *testing.T) {
	d, m := newModel(t, nil, Date{2023, 1, 31})
	m.SetDate(Date{2024, 2, 29})
	settle(t, d)

	want := Date{2024, 2, 29}
	if got := m.Date(); got != want {
		t.Errorf("Date() = %v, want %v", got, want)
	}
	if got := m.LiveDate(); got != want {
		t.Errorf("LiveDate() = %v, want %v", got, want)
	}
}

func TestSaveTo_RestoresDate(t *testing.T) {
	d, m := newModel(t, nil, Date{2023, 1, 31})
	m.SetDate(Date{2031, 7, 4})
	settle(t, d)

	store := restoration.NewStore()
	m.SaveTo(store)
	if store.Len() != 3 {
		t.Fatalf("store has %d entries, want 3", store.Len())
	}

	_, restored := newModel(t, store, Date{2000, 6, 15})
	if got := restored.Date(); got != (Date{2031, 7, 4}) {
		t.Errorf("restored Date() = %v, want 2031-07-04", got)
	}
	for i := range 3 {
		if got, want := restored.Picker(i).Snapshot(), m.Picker(i).Snapshot(); got != want {
			t.Errorf("column %d snapshot = %+v, want %+v", i, got, want)
		}
	}
}

func TestMoveFocus(t *testing.T) {
	_, m := newModel(t, nil, Date{2023, 1, 31})
	m.MoveFocus(-1)
	if m.Focus() != 2 {
		t.Errorf("Focus() = %d, want 2", m.Focus())
	}
	m.MoveFocus(2)
	if m.Focus() != 1 {
		t.Errorf("Focus() = %d, want 1", m.Focus())
	}
}

func TestRender(t *testing.T) {
	_, m := newModel(t, nil, Date{2023, 1, 31})
	w, h := m.Size()
	a := image.NewRGBA(image.Rect(0, 0, w, h))
	b := image.NewRGBA(image.Rect(0, 0, w, h))
	m.Render(a)
	m.Render(b)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Render is not deterministic")
	}
	if got := a.RGBAAt(Gap, Header+1); got != focused {
		t.Errorf("focused column background = %v, want %v", got, focused)
	}
	if got := a.RGBAAt(Gap+ColumnWidth+Gap, Header+1); got != background {
		t.Errorf("column background = %v, want %v", got, background)
	}
}

func TestDispose_DetachesKeyboard(t *testing.T) {
	d := kittest.NewDriverWithT(t)
	m := New(d.Scheduler, testOptions, nil, Date{2023, 1, 31})
	m.Dispose()
	if m.Key(keyboard.Event{Key: keyboard.KeyDown}) {
		t.Error("disposed model handled a key")
	}
}
