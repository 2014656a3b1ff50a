package reactive

import (
	"sort"
	"sync"
)

// State is a reactive key/value container.
type State struct {
	id      uint64
	tracker *Tracker

	// mu protects data and deps. It is never held while listeners run.
	mu   sync.RWMutex
	data map[string]any

	// deps maps a key to its subscribed listeners, keyed by listener ID so a
	// listener is recorded at most once per key.
	deps map[string]map[uint64]Listener
}

// NewState creates a state bound to tracker. The initial map is copied;
// later changes to it are not observed.
func NewState(tracker *Tracker, initial map[string]any) *State {
	if tracker == nil {
		tracker = NewTracker()
	}
	data := make(map[string]any, len(initial))
	for k, v := range initial {
		data[k] = v
	}
	return &State{
		id:      nextID(),
		tracker: tracker,
		data:    data,
		deps:    make(map[string]map[uint64]Listener),
	}
}

// ID returns the unique identifier for this state.
func (s *State) ID() uint64 {
	return s.id
}

// Tracker returns the tracker this state reports reads to.
func (s *State) Tracker() *Tracker {
	return s.tracker
}

// Get returns the value stored under key and subscribes the current
// listener, if any, to key.
func (s *State) Get(key string) any {
	s.mu.RLock()
	value := s.data[key]
	s.mu.RUnlock()

	if l := s.tracker.Current(); l != nil {
		s.subscribe(key, l)
		if src, ok := l.(sourceRecorder); ok {
			src.addSource(s, key)
		}
	}

	return value
}

// Peek returns the value stored under key without subscribing.
func (s *State) Peek(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key]
}

// Lookup is Peek with a presence flag.
func (s *State) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key, then notifies every listener subscribed to
// key before returning. Listeners are notified on every write, including
// writes of an equal value.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	s.data[key] = value
	subs := s.subscribersLocked(key)
	s.mu.Unlock()

	s.tracker.notify(key, subs)
}

// Update replaces the value under key with fn(current) and notifies.
// fn runs without the lock held and may read this state.
func (s *State) Update(key string, fn func(any) any) {
	s.mu.RLock()
	current := s.data[key]
	s.mu.RUnlock()

	next := fn(current)

	s.mu.Lock()
	s.data[key] = next
	subs := s.subscribersLocked(key)
	s.mu.Unlock()

	s.tracker.notify(key, subs)
}

// Keys returns the stored keys in sorted order.
func (s *State) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Snapshot returns a shallow copy of the stored values.
func (s *State) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Subscribers returns the number of listeners subscribed to key.
func (s *State) Subscribers(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deps[key])
}

func (s *State) subscribe(key string, l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.deps[key]
	if !ok {
		set = make(map[uint64]Listener)
		s.deps[key] = set
	}
	set[l.ID()] = l
}

func (s *State) unsubscribe(key string, l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.deps[key]
	if !ok {
		return
	}
	delete(set, l.ID())
	if len(set) == 0 {
		delete(s.deps, key)
	}
}

// subscribersLocked copies the listeners for key in subscription-ID order.
func (s *State) subscribersLocked(key string) []Listener {
	set := s.deps[key]
	if len(set) == 0 {
		return nil
	}
	subs := make([]Listener, 0, len(set))
	for _, l := range set {
		subs = append(subs, l)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID() < subs[j].ID() })
	return subs
}

// sourceRecorder is implemented by listeners that drop their subscriptions
// themselves (effects).
type sourceRecorder interface {
	addSource(s *State, key string)
}
