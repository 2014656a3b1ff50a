package reactive

import "sync/atomic"

// Listener is anything that can be notified when a dependency changes.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication of subscriptions and batched notifications.
	ID() uint64
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc struct {
	id uint64
	fn func()
}

// NewListener wraps fn with a fresh listener ID.
func NewListener(fn func()) *ListenerFunc {
	return &ListenerFunc{id: nextID(), fn: fn}
}

// MarkDirty calls the wrapped function.
func (l *ListenerFunc) MarkDirty() {
	if l.fn != nil {
		l.fn()
	}
}

// ID returns the listener ID.
func (l *ListenerFunc) ID() uint64 {
	return l.id
}

// globalIDCounter is the source of unique IDs for listeners and states.
var globalIDCounter uint64

// nextID returns the next unique ID. IDs are never reused.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
