// Package reactive provides the state container behind reactive element
// content.
//
// A State wraps a plain key/value map. Reading a key while a listener is
// being tracked subscribes that listener to the key; writing a key
// synchronously notifies every listener subscribed to it.
//
// # Tracking
//
// Tracking is owned by a Tracker rather than a process-wide slot. The
// tracker keeps a stack of listeners, so a tracked computation that starts
// another tracked computation attributes each read to the innermost
// listener and restores the outer one afterwards:
//
//	tr := reactive.NewTracker()
//	counter := reactive.NewState(tr, map[string]any{"n": 1})
//
//	eff := reactive.NewEffect(tr, func() {
//	    label.SetText(fmt.Sprint(counter.Get("n")))
//	})
//	defer eff.Dispose()
//
//	counter.Set("n", 2) // effect re-runs before Set returns
//
// # Values
//
// Value is the tagged variant used for element content: either a Literal
// string or a Reactive accessor re-evaluated on every tracked run.
//
// # Concurrency
//
// A Tracker and the states bound to it are meant for one goroutine at a time.
// Callers that share them across goroutines must serialize access.
package reactive
