package reactive

import (
	"log/slog"
)

// DefaultMaxDepth bounds re-entrant notification: a write made by a listener
// that is itself running because of a write.
const DefaultMaxDepth = 64

// Tracker holds the tracking context for a group of states and effects.
type Tracker struct {
	// stack holds the listeners currently tracking reads, innermost last.
	stack []Listener

	// batchDepth tracks nested Batch() calls.
	// When > 0, notifications are queued instead of firing immediately.
	batchDepth int

	// pending accumulates listeners to notify when the batch completes.
	pending []Listener

	// notifyDepth counts nested notification rounds.
	notifyDepth int
	maxDepth    int

	logger   *slog.Logger
	onNotify func(key string, listeners int)
	onDrop   func(key string)
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the logger used for dropped notifications.
func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMaxDepth sets the re-entrant notification limit. n <= 0 restores the
// default.
func WithMaxDepth(n int) TrackerOption {
	return func(t *Tracker) {
		t.SetMaxDepth(n)
	}
}

// WithNotifyHook registers fn to observe every notification round.
func WithNotifyHook(fn func(key string, listeners int)) TrackerOption {
	return func(t *Tracker) {
		t.onNotify = fn
	}
}

// WithDropHook registers fn to observe notifications dropped by the depth
// limit.
func WithDropHook(fn func(key string)) TrackerOption {
	return func(t *Tracker) {
		t.onDrop = fn
	}
}

// NewTracker creates a tracker with no active listener.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetMaxDepth sets the re-entrant notification limit.
func (t *Tracker) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	t.maxDepth = n
}

// Current returns the innermost tracking listener, or nil.
func (t *Tracker) Current() Listener {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// Depth returns how many listeners are currently tracking.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

// Track runs fn with l as the current listener. Reads made by fn subscribe l.
// The previous listener is restored even if fn panics.
func (t *Tracker) Track(l Listener, fn func()) {
	t.stack = append(t.stack, l)
	defer func() {
		t.stack = t.stack[:len(t.stack)-1]
	}()
	fn()
}

// Untracked runs fn without tracking reads as dependencies.
func (t *Tracker) Untracked(fn func()) {
	t.Track(nil, fn)
}

// notify delivers a write on key to subs, or queues them inside a batch.
func (t *Tracker) notify(key string, subs []Listener) {
	if len(subs) == 0 {
		return
	}

	if t.batchDepth > 0 {
		t.pending = append(t.pending, subs...)
		return
	}

	if t.notifyDepth >= t.maxDepth {
		t.logger.Warn("reactive notification dropped: re-entrant depth limit reached",
			"key", key,
			"depth", t.notifyDepth,
			"listeners", len(subs))
		if t.onDrop != nil {
			t.onDrop(key)
		}
		return
	}

	if t.onNotify != nil {
		t.onNotify(key, len(subs))
	}

	t.notifyDepth++
	defer func() { t.notifyDepth-- }()

	for _, sub := range subs {
		sub.MarkDirty()
	}
}
