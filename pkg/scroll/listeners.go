package scroll

// listenerList keeps callbacks in registration order.
type listenerList[F any] struct {
	entries []listenerEntry[F]
	nextID  int
}

type listenerEntry[F any] struct {
	id int
	fn F
}

func (l *listenerList[F]) add(fn F) func() {
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, listenerEntry[F]{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listenerList[F]) snapshot() []F {
	out := make([]F, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}
