package reactive

// Batch groups multiple writes into a single notification phase.
// Listeners notified by writes inside fn are collected, deduplicated by ID,
// and notified once when the outermost batch completes.
//
// Example:
//
//	tr.Batch(func() {
//	    form.Set("first", "Ada")
//	    form.Set("last", "Lovelace")
//	})
//	// Each dependent effect re-runs once.
func (t *Tracker) Batch(fn func()) {
	t.batchDepth++

	defer func() {
		t.batchDepth--
		if t.batchDepth == 0 {
			t.flush()
		}
	}()

	fn()
}

// InBatch reports whether a batch is open.
func (t *Tracker) InBatch() bool {
	return t.batchDepth > 0
}

// flush deduplicates and notifies all pending listeners.
func (t *Tracker) flush() {
	updates := t.pending
	t.pending = nil
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	unique := make([]Listener, 0, len(updates))

	for _, l := range updates {
		id := l.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, l)
		}
	}

	t.notify("*batch*", unique)
}
