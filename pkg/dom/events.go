package dom

// Event is dispatched to element listeners.
type Event struct {
	// Type is the event name without the "on" prefix (e.g., "click").
	Type string

	// Target is the element the event was dispatched on.
	Target *Element

	// CurrentTarget is the element whose listener is running.
	CurrentTarget *Element

	// Bubbles propagates the event to ancestors after the target.
	Bubbles bool

	// Detail carries caller data (input value, key, etc.).
	Detail any

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// Handler handles a dispatched event.
type Handler func(ev *Event)

type listener struct {
	id uint64
	fn Handler
}

// AddEventListener registers fn for the named event and returns a function
// that removes it again.
func (e *Element) AddEventListener(event string, fn Handler) (remove func()) {
	if fn == nil || e.disposed {
		return func() {}
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]listener)
	}
	e.nextID++
	id := e.nextID
	e.listeners[event] = append(e.listeners[event], listener{id: id, fn: fn})

	return func() {
		ls := e.listeners[event]
		for i, l := range ls {
			if l.id == id {
				e.listeners[event] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for event.
func (e *Element) ListenerCount(event string) int {
	return len(e.listeners[event])
}

// Dispatch runs the listeners for ev.Type on this element, then on each
// ancestor while ev.Bubbles is set and propagation was not stopped.
// It returns the number of listeners invoked.
func (e *Element) Dispatch(ev *Event) int {
	if ev == nil {
		return 0
	}
	ev.Target = e
	invoked := 0

	for cur := e; cur != nil; cur = cur.Parent() {
		ev.CurrentTarget = cur
		// Copy so listeners may add or remove listeners while running.
		ls := append([]listener(nil), cur.listeners[ev.Type]...)
		for _, l := range ls {
			l.fn(ev)
			invoked++
		}
		if !ev.Bubbles || ev.stopped {
			break
		}
	}
	return invoked
}
