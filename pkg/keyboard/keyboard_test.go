package keyboard

import "testing"

func TestRegistry_NotifyNewestFirst(t *testing.T) {
	var reg Registry
	var order []string
	reg.Add(func(Event) bool { order = append(order, "first"); return false })
	reg.Add(func(Event) bool { order = append(order, "second"); return false })

	if reg.Notify(Event{Key: KeyUp}) {
		t.Error("Notify() = true, want false when nobody consumes")
	}
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("order = %v, want [second first]", order)
	}
}

func TestRegistry_StopsAtConsumer(t *testing.T) {
	var reg Registry
	var reached bool
	reg.Add(func(Event) bool { reached = true; return false })
	reg.Add(func(ev Event) bool { return ev.Key == KeyDown })

	if !reg.Notify(Event{Key: KeyDown}) {
		t.Error("Notify() = false, want true")
	}
	if reached {
		t.Error("older listener should not see a consumed event")
	}
}

func TestRegistry_Remove(t *testing.T) {
	var reg Registry
	var calls int
	remove := reg.Add(func(Event) bool { calls++; return true })
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
	remove()
	remove()
	if reg.Len() != 0 {
		t.Errorf("Len() = %d, want 0", reg.Len())
	}
	reg.Notify(Event{Key: KeyUp})
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestRegistry_RemoveDuringNotify(t *testing.T) {
	var reg Registry
	var remove func()
	remove = reg.Add(func(Event) bool { remove(); return true })
	reg.Notify(Event{Key: KeyEnter})
	if reg.Len() != 0 {
		t.Errorf("Len() = %d, want 0", reg.Len())
	}
}

func TestKeyString(t *testing.T) {
	if got := KeyPageDown.String(); got != "pagedown" {
		t.Errorf("KeyPageDown.String() = %q, want %q", got, "pagedown")
	}
	if got := Key(99).String(); got != "unknown" {
		t.Errorf("Key(99).String() = %q, want %q", got, "unknown")
	}
}
