package forge

import (
	"sort"
	"strings"

	"github.com/vango-dev/forge/pkg/dom"
	"github.com/vango-dev/forge/pkg/merge"
	"github.com/vango-dev/forge/pkg/reactive"
)

// Options configures one element. Every field is optional.
type Options struct {
	// Text sets the text content, replacing any children.
	Text reactive.Value

	// HTML sets raw inner markup. It is inserted without sanitizing.
	HTML string

	// Children are appended in order.
	Children []*dom.Element

	// Class replaces the class attribute (space-separated).
	Class reactive.Value

	// Events maps event names ("click") to handlers.
	Events map[string]dom.Handler

	// Style maps property names to values. Underscores and camelCase are
	// translated to hyphens ("margin_top", "marginTop" -> "margin-top").
	Style map[string]string

	// Alias registers the element in the alias table.
	Alias string

	// Attrs are extra attributes, applied last. Keys that name an option
	// ("class", "style", "text", ...) are skipped.
	Attrs map[string]reactive.Value
}

// Keys used when options are flattened for merging and when they are read
// from archetype files.
const (
	keyText     = "text"
	keyHTML     = "html"
	keyChildren = "children"
	keyClass    = "class"
	keyEvents   = "events"
	keyStyle    = "style"
	keyAlias    = "alias"
	keyAttrs    = "attrs"
)

// Clone returns a copy that shares no mutable state with o. Children are
// deep-cloned detached elements.
func (o Options) Clone() Options {
	cp := Options{
		Text:  o.Text,
		HTML:  o.HTML,
		Class: o.Class,
		Alias: o.Alias,
	}
	if o.Children != nil {
		cp.Children = make([]*dom.Element, len(o.Children))
		for i, c := range o.Children {
			if c != nil {
				cp.Children[i] = c.Clone()
			}
		}
	}
	if o.Events != nil {
		cp.Events = make(map[string]dom.Handler, len(o.Events))
		for k, v := range o.Events {
			cp.Events[k] = v
		}
	}
	if o.Style != nil {
		cp.Style = make(map[string]string, len(o.Style))
		for k, v := range o.Style {
			cp.Style[k] = v
		}
	}
	if o.Attrs != nil {
		cp.Attrs = make(map[string]reactive.Value, len(o.Attrs))
		for k, v := range o.Attrs {
			cp.Attrs[k] = v
		}
	}
	return cp
}

// Merge returns o with over applied on top using merge.Deep semantics:
// Events, Style and Attrs merge key by key, Children is replaced wholesale,
// and every other field is replaced when set in over. Text and Class count
// as set for any non-zero Value, so Literal("") clears them. HTML and Alias
// are plain strings and only override when non-empty. Neither value is
// mutated.
func (o Options) Merge(over Options) Options {
	return optionsFromMap(merge.Deep(o.toMap(), over.toMap()))
}

// toMap flattens the set fields of o.
func (o Options) toMap() map[string]any {
	m := make(map[string]any)
	if !o.Text.IsZero() {
		m[keyText] = o.Text
	}
	if o.HTML != "" {
		m[keyHTML] = o.HTML
	}
	if o.Children != nil {
		m[keyChildren] = o.Children
	}
	if !o.Class.IsZero() {
		m[keyClass] = o.Class
	}
	if len(o.Events) > 0 {
		events := make(map[string]any, len(o.Events))
		for k, v := range o.Events {
			events[k] = v
		}
		m[keyEvents] = events
	}
	if len(o.Style) > 0 {
		style := make(map[string]any, len(o.Style))
		for k, v := range o.Style {
			style[k] = v
		}
		m[keyStyle] = style
	}
	if o.Alias != "" {
		m[keyAlias] = o.Alias
	}
	if len(o.Attrs) > 0 {
		attrs := make(map[string]any, len(o.Attrs))
		for k, v := range o.Attrs {
			attrs[k] = v
		}
		m[keyAttrs] = attrs
	}
	return m
}

// optionsFromMap is the inverse of toMap.
func optionsFromMap(m map[string]any) Options {
	var o Options
	if v, ok := m[keyText].(reactive.Value); ok {
		o.Text = v
	}
	if v, ok := m[keyHTML].(string); ok {
		o.HTML = v
	}
	if v, ok := m[keyChildren].([]*dom.Element); ok {
		o.Children = v
	}
	if v, ok := m[keyClass].(reactive.Value); ok {
		o.Class = v
	}
	if events, ok := m[keyEvents].(map[string]any); ok {
		o.Events = make(map[string]dom.Handler, len(events))
		for k, v := range events {
			if h, ok := v.(dom.Handler); ok {
				o.Events[k] = h
			}
		}
	}
	if style, ok := m[keyStyle].(map[string]any); ok {
		o.Style = make(map[string]string, len(style))
		for k, v := range style {
			if s, ok := v.(string); ok {
				o.Style[k] = s
			}
		}
	}
	if v, ok := m[keyAlias].(string); ok {
		o.Alias = v
	}
	if attrs, ok := m[keyAttrs].(map[string]any); ok {
		o.Attrs = make(map[string]reactive.Value, len(attrs))
		for k, v := range attrs {
			if val, ok := v.(reactive.Value); ok {
				o.Attrs[k] = val
			}
		}
	}
	return o
}

// reservedAttr reports whether an Attrs key names one of the options, which
// attribute assignment must not override.
func reservedAttr(key string) bool {
	switch strings.ToLower(key) {
	case keyText, keyHTML, keyChildren, keyClass, keyEvents, keyStyle, keyAlias, keyAttrs:
		return true
	}
	return false
}

// sortedKeys returns the keys of m in sorted order so option interpreters
// apply deterministically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
