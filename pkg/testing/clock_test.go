package testing

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/kit/pkg/animation"
	kiterrors "github.com/go-drift/kit/pkg/errors"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_AdvanceIgnoresNegative(t *testing.T) {
	clk := NewFakeClock()
	clk.Advance(-time.Second)
	clk.Advance(0)

	if got := clk.Elapsed(); got != 0 {
		t.Errorf("Elapsed() = %v, want 0", got)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestDriver_PumpAdvancesClock(t *testing.T) {
	d := NewDriver()
	start := d.Clock.Now()

	d.Pump()
	d.Pump()

	if got := d.Clock.Now().Sub(start); got != 2*DefaultFrameInterval {
		t.Errorf("elapsed = %v, want %v", got, 2*DefaultFrameInterval)
	}
	if got := d.Clock.Elapsed(); got != 2*DefaultFrameInterval {
		t.Errorf("Elapsed() = %v, want %v", got, 2*DefaultFrameInterval)
	}
	if d.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", d.Frames())
	}
}

func TestDriver_PumpAndSettle(t *testing.T) {
	d := NewDriver()
	var ticks int
	var ticker *animation.Ticker
	ticker = d.Scheduler.NewTicker(func(elapsed time.Duration) {
		ticks++
		if elapsed >= 100*time.Millisecond {
			ticker.Stop()
		}
	})
	ticker.Start()

	if err := d.PumpAndSettle(time.Second); err != nil {
		t.Fatalf("PumpAndSettle() error = %v", err)
	}
	if ticks == 0 {
		t.Error("expected ticker to run")
	}
	if d.Scheduler.HasActiveTickers() {
		t.Error("expected no active tickers after settle")
	}
}

func TestDriver_PumpAndSettleTimeout(t *testing.T) {
	d := NewDriver()
	ticker := d.Scheduler.NewTicker(func(time.Duration) {})
	ticker.Start()
	defer ticker.Stop()

	if err := d.PumpAndSettle(100 * time.Millisecond); !stderrors.Is(err, ErrSettleTimeout) {
		t.Errorf("PumpAndSettle() error = %v, want ErrSettleTimeout", err)
	}
}

func TestCaptureErrors(t *testing.T) {
	rec := CaptureErrors(t)
	kiterrors.Report(&kiterrors.KitError{Op: "test", Kind: kiterrors.KindRange, Err: stderrors.New("x")})
	kiterrors.ReportPanic(&kiterrors.PanicError{Op: "test", Value: "boom"})

	if got := rec.CountKind(kiterrors.KindRange); got != 1 {
		t.Errorf("CountKind(KindRange) = %d, want 1", got)
	}
	if got := len(rec.Panics()); got != 1 {
		t.Errorf("len(Panics()) = %d, want 1", got)
	}
}
