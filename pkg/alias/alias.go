// Package alias binds names to live document elements.
//
// An entry stays valid only while its element is attached to the document;
// Get checks membership against the current tree on every call.
package alias

import (
	"log/slog"
	"sort"

	"github.com/vango-dev/forge/internal/errors"
	"github.com/vango-dev/forge/pkg/dom"
)

// Registry maps alias names to elements of one document.
type Registry struct {
	doc     *dom.Document
	entries map[string]*dom.Element

	strict  bool
	verbose bool
	logger  *slog.Logger

	onOverwrite func(name string)
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrict rejects re-registration of an existing alias.
func WithStrict(strict bool) Option {
	return func(r *Registry) { r.strict = strict }
}

// WithVerbose logs a warning when an alias is overwritten.
func WithVerbose(verbose bool) Option {
	return func(r *Registry) { r.verbose = verbose }
}

// WithLogger sets the logger for overwrite warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithOverwriteHook registers fn to observe overwrites.
func WithOverwriteHook(fn func(name string)) Option {
	return func(r *Registry) { r.onOverwrite = fn }
}

// New creates an empty registry for doc.
func New(doc *dom.Document, opts ...Option) *Registry {
	r := &Registry{
		doc:     doc,
		entries: make(map[string]*dom.Element),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetStrict switches strict mode on or off.
func (r *Registry) SetStrict(strict bool) {
	r.strict = strict
}

// Strict reports whether strict mode is on.
func (r *Registry) Strict() bool {
	return r.strict
}

// SetVerbose switches overwrite warnings on or off.
func (r *Registry) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// Set binds name to el. When name is already bound, strict mode fails with
// DuplicateAlias and leaves the entry untouched; otherwise the entry is
// replaced.
func (r *Registry) Set(name string, el *dom.Element) error {
	if el == nil {
		return errors.New(errors.CodeNotElement).WithSubject(name)
	}

	if _, exists := r.entries[name]; exists {
		if r.strict {
			return errors.New(errors.CodeDuplicateAlias).WithSubject(name)
		}
		if r.verbose {
			r.logger.Warn("alias overwritten, consider removing the previous alias or choosing a new name",
				"alias", name)
		}
		if r.onOverwrite != nil {
			r.onOverwrite(name)
		}
	}

	r.entries[name] = el
	return nil
}

// Get returns the element bound to name. It fails with ElementGone when name
// is unbound or its element is no longer attached to the document.
func (r *Registry) Get(name string) (*dom.Element, error) {
	el, ok := r.entries[name]
	if !ok || !r.doc.Contains(el) {
		return nil, errors.New(errors.CodeElementGone).WithSubject(name)
	}
	return el, nil
}

// Has reports whether Get(name) would succeed.
func (r *Registry) Has(name string) bool {
	el, ok := r.entries[name]
	return ok && r.doc.Contains(el)
}

// Bound reports whether name has an entry, attached or not.
func (r *Registry) Bound(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Delete removes the entry for name.
func (r *Registry) Delete(name string) {
	delete(r.entries, name)
}

// Names returns every bound name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prune removes entries whose elements are detached and returns how many
// were removed.
func (r *Registry) Prune() int {
	removed := 0
	for name, el := range r.entries {
		if !r.doc.Contains(el) {
			delete(r.entries, name)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
