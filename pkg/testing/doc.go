// Package testing provides deterministic frame driving for kit tests.
//
// # Quick Start
//
// Create a driver, build components on its scheduler, and pump frames:
//
//	func TestPicker(t *testing.T) {
//	    d := kittest.NewDriverWithT(t)
//	    p := wheel.NewPicker(d.Scheduler, wheel.Options{ItemExtent: 40, ViewportExtent: 200}, props)
//	    p.Mount()
//
//	    p.OnWheel(1)
//	    if err := d.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	}
//
// # Time Control
//
// The driver owns a [FakeClock]; each Pump advances it by one frame before
// stepping the scheduler, so debounce windows and animation durations are
// exact:
//
//	d.Advance(100 * time.Millisecond)
//
// # Error Capture
//
// [CaptureErrors] installs a recording handler for reported errors and
// restores the previous handler when the test ends.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import kittest "github.com/go-drift/kit/pkg/testing"
package testing
