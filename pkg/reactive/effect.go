package reactive

// Effect is a tracked side effect. It runs once when created and re-runs
// synchronously whenever a key it read on its last run is written.
//
// Each run drops the previous run's subscriptions before tracking again, so
// keys that are no longer read stop triggering the effect.
type Effect struct {
	id      uint64
	tracker *Tracker
	fn      func()

	// sources are the (state, key) pairs read during the last run.
	sources []source

	disposed bool
	runs     int
}

type source struct {
	state *State
	key   string
}

// NewEffect creates an effect and runs it once before returning.
func NewEffect(tracker *Tracker, fn func()) *Effect {
	if tracker == nil {
		tracker = NewTracker()
	}
	e := &Effect{
		id:      nextID(),
		tracker: tracker,
		fn:      fn,
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs returns how many times the effect body has executed.
func (e *Effect) Runs() int {
	return e.runs
}

// Disposed reports whether Dispose has been called.
func (e *Effect) Disposed() bool {
	return e.disposed
}

func (e *Effect) run() {
	if e.disposed || e.fn == nil {
		return
	}

	e.dropSources()
	e.runs++
	e.tracker.Track(e, e.fn)
}

// addSource records a dependency. Called by State.Get during tracking.
func (e *Effect) addSource(s *State, key string) {
	for _, src := range e.sources {
		if src.state == s && src.key == key {
			return
		}
	}
	e.sources = append(e.sources, source{state: s, key: key})
}

func (e *Effect) dropSources() {
	for _, src := range e.sources {
		src.state.unsubscribe(src.key, e)
	}
	e.sources = e.sources[:0]
}

// Dispose unsubscribes the effect from everything it read. A disposed
// effect never runs again. Dispose is idempotent.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.dropSources()
	e.sources = nil
}
