// Package dev provides the forge preview server and live reload.
//
// This package implements:
//   - An HTTP preview of the document a Forge builds into
//   - Archetype instantiation and state writes over HTTP
//   - WebSocket-based browser refresh
//   - Archetype file watching with reload on change
//
// # Architecture
//
//   - PreviewServer: owns one Forge behind a mutex and serves it
//   - ReloadServer: notifies browsers of changes via WebSocket
//   - Watcher: reports writes to archetype files (fsnotify, debounced)
//
// # Usage
//
//	srv, err := dev.NewPreviewServer(dev.PreviewOptions{Config: cfg})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
//	GET  /                     rendered document with the reload client
//	GET  /archetypes           registered archetypes as JSON
//	GET  /archetypes/{name}    one detached instance as HTML (alias not registered)
//	POST /archetypes/{name}    instantiate into ?into= (default from config)
//	GET  /state/{name}         state snapshot as JSON
//	POST /state/{name}/{key}   set key to the JSON request body
//	GET  /ws                   live reload socket
//	GET  /metrics              Prometheus metrics (when enabled)
//
// # Reload Protocol
//
// Messages are JSON-encoded:
//
//	{"type": "reload"}                  // Triggers full page reload
//	{"type": "error", "error": "..."}   // Shows error overlay
//	{"type": "clear"}                   // Clears error overlay
package dev
