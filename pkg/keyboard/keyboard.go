// Package keyboard routes key events to listeners registered on an explicit
// [Registry]. Components register when they mount and call the returned
// remove function when they are disposed; nothing is kept in package state.
package keyboard

import "sync"

// Key identifies a logical key.
type Key int

// Keys understood by kit components.
const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyPageUp:
		return "pageup"
	case KeyPageDown:
		return "pagedown"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// Event is a key press.
type Event struct {
	Key   Key
	Shift bool
}

// Listener handles an event and reports whether it consumed it.
type Listener func(Event) bool

type entry struct {
	id int
	fn Listener
}

// Registry holds key listeners. The most recently added listener sees an
// event first.
type Registry struct {
	mu      sync.Mutex
	entries []entry
	nextID  int
}

// Add registers fn and returns a function that removes it.
// Calling the remove function more than once is a no-op.
func (r *Registry) Add(fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.entries = append(r.entries, entry{id: id, fn: fn})
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.entries {
			if e.id == id {
				r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
				return
			}
		}
	}
}

// Notify offers ev to listeners, newest first, and stops at the first one
// that consumes it. It reports whether any listener did.
func (r *Registry) Notify(ev Event) bool {
	r.mu.Lock()
	entries := make([]entry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].fn(ev) {
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
