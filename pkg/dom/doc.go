// Package dom provides the host document tree forge builds into.
//
// A Document is an in-memory HTML tree backed by golang.org/x/net/html.
// Elements wrap the underlying nodes and add what the HTML tree itself
// lacks: event listener tables, cleanup hooks and a live membership check.
//
// # Core Types
//
// Document owns the tree and hands out one *Element per element node, so
// element identity is stable across queries. Element exposes the familiar
// operations: text and markup content, attributes, classes, inline styles,
// child management and event dispatch.
//
// # Queries
//
// Query and QueryAll compile CSS selectors with cascadia:
//
//	app, err := doc.Query("#app")
//	items, err := doc.QueryAll("ul > li.active")
//
// # Attachment
//
// An element is attached while it can reach the document root through its
// parent chain. Contains performs that walk on every call; there is no
// cached flag to go stale.
package dom
