package stage

// PointerEvent carries pointer data for InputDown, InputUp and Click.
type PointerEvent struct {
	Node     *Node
	EntityID uint32
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
}

// DragEvent carries drag data. X and Y are the dragged node's new local
// position (its position within its parent), not the pointer position.
type DragEvent struct {
	Node     *Node
	EntityID uint32
	X, Y     float64
	GlobalX  float64
	GlobalY  float64
	DeltaX   float64
	DeltaY   float64
}

type listener[T any] struct {
	id uint32
	fn func(T)
}

// Signal is a list of listeners fired in registration order. The zero value
// is ready to use. Listeners are not deduplicated: adding the same function
// twice makes it fire twice.
type Signal[T any] struct {
	listeners []listener[T]
	nextID    uint32
}

// Binding allows removing a listener registered with Signal.Add.
type Binding struct {
	detach func()
}

// Detach unregisters the listener so it no longer fires. Safe to call on a
// nil Binding and safe to call more than once.
func (b *Binding) Detach() {
	if b == nil || b.detach == nil {
		return
	}
	b.detach()
	b.detach = nil
}

// Add registers fn and returns a Binding that removes it.
func (s *Signal[T]) Add(fn func(T)) *Binding {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})
	return &Binding{detach: func() { s.remove(id) }}
}

// Len returns the number of registered listeners.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// Dispatch calls every listener with v. Listeners added during dispatch
// fire from the next dispatch on.
func (s *Signal[T]) Dispatch(v T) {
	ls := s.listeners
	for _, l := range ls {
		l.fn(v)
	}
}

// removeAll drops every listener.
func (s *Signal[T]) removeAll() {
	s.listeners = nil
}

func (s *Signal[T]) remove(id uint32) {
	for i := range s.listeners {
		if s.listeners[i].id == id {
			// Copy on remove so an in-flight Dispatch keeps its snapshot.
			next := make([]listener[T], 0, len(s.listeners)-1)
			next = append(next, s.listeners[:i]...)
			s.listeners = append(next, s.listeners[i+1:]...)
			return
		}
	}
}

// Events is the per-node set of interaction signals.
type Events struct {
	InputDown  Signal[PointerEvent]
	InputUp    Signal[PointerEvent]
	Click      Signal[PointerEvent]
	DragStart  Signal[DragEvent]
	DragUpdate Signal[DragEvent]
	DragStop   Signal[DragEvent]
}

func (e *Events) reset() {
	e.InputDown.removeAll()
	e.InputUp.removeAll()
	e.Click.removeAll()
	e.DragStart.removeAll()
	e.DragUpdate.removeAll()
	e.DragStop.removeAll()
}
