package forge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"github.com/vango-dev/forge/pkg/alias"
	"github.com/vango-dev/forge/pkg/archetype"
	"github.com/vango-dev/forge/pkg/dom"
	"github.com/vango-dev/forge/pkg/merge"
	"github.com/vango-dev/forge/pkg/reactive"
)

// Default tracer name for forge spans.
const defaultTracerName = "github.com/vango-dev/forge"

// Forge builds elements into one document and owns the registries that
// go with it.
type Forge struct {
	doc        *dom.Document
	tracker    *reactive.Tracker
	aliases    *alias.Registry
	archetypes *archetype.Registry[Options]
	states     map[string]*reactive.State

	logger *slog.Logger
	level  *slog.LevelVar
	dev    bool

	metrics *Metrics
	tracer  trace.Tracer
}

type settings struct {
	logger   *slog.Logger
	dev      bool
	strict   bool
	maxDepth int
	metrics  *Metrics
	tracer   trace.Tracer
}

// Option configures a Forge.
type Option func(*settings)

// WithLogger sets the base logger. Dev mode gates its output at Debug level;
// the logger's own handler must accept Debug records for them to appear.
// Without it, forge logs text to stderr.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithDev starts the Forge with verbose diagnostics on.
func WithDev(dev bool) Option {
	return func(s *settings) { s.dev = dev }
}

// WithStrictAlias starts the Forge with strict alias uniqueness on.
func WithStrictAlias(strict bool) Option {
	return func(s *settings) { s.strict = strict }
}

// WithMaxNotifyDepth bounds re-entrant state notification.
func WithMaxNotifyDepth(n int) Option {
	return func(s *settings) { s.maxDepth = n }
}

// WithMetrics records operations into m.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithTracer sets the tracer used by the *Context methods.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) { s.tracer = t }
}

// New creates a Forge over doc. A nil doc gets a fresh empty document.
func New(doc *dom.Document, opts ...Option) *Forge {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if doc == nil {
		doc = dom.NewDocument()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(defaultTracerName)
	}

	level := new(slog.LevelVar)
	var handler slog.Handler
	if s.logger != nil {
		handler = &levelHandler{level: level, inner: s.logger.Handler()}
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler).With("component", "forge")

	f := &Forge{
		doc:     doc,
		states:  make(map[string]*reactive.State),
		logger:  logger,
		level:   level,
		metrics: s.metrics,
		tracer:  s.tracer,
	}

	f.tracker = reactive.NewTracker(
		reactive.WithLogger(logger),
		reactive.WithMaxDepth(s.maxDepth),
		reactive.WithNotifyHook(func(_ string, n int) { f.metrics.recordNotify(n) }),
		reactive.WithDropHook(func(string) { f.metrics.recordDrop() }),
	)
	f.aliases = alias.New(doc,
		alias.WithStrict(s.strict),
		alias.WithLogger(logger),
		alias.WithOverwriteHook(func(string) { f.metrics.recordOverwrite() }),
	)
	f.archetypes = archetype.New(Options.Clone, Options.Merge)

	f.setDev(s.dev)
	return f
}

// Document returns the document elements are built into.
func (f *Forge) Document() *dom.Document {
	return f.doc
}

// Tracker returns the tracking context shared by this Forge's states.
func (f *Forge) Tracker() *reactive.Tracker {
	return f.tracker
}

// Logger returns the Forge logger.
func (f *Forge) Logger() *slog.Logger {
	return f.logger
}

// =============================================================================
// Toggles
// =============================================================================

// UseDev toggles verbose diagnostic logging.
func (f *Forge) UseDev() {
	f.setDev(!f.dev)
}

// DevMode reports whether verbose diagnostics are on.
func (f *Forge) DevMode() bool {
	return f.dev
}

func (f *Forge) setDev(dev bool) {
	f.dev = dev
	f.aliases.SetVerbose(dev)
	if dev {
		f.level.Set(slog.LevelDebug)
	} else {
		f.level.Set(slog.LevelInfo)
	}
}

// UseStrictAlias toggles strict alias uniqueness.
func (f *Forge) UseStrictAlias() {
	f.aliases.SetStrict(!f.aliases.Strict())
}

// StrictAlias reports whether strict alias uniqueness is on.
func (f *Forge) StrictAlias() bool {
	return f.aliases.Strict()
}

// =============================================================================
// Aliases
// =============================================================================

// Alias returns the live element registered under name. It fails with
// ElementGone when name is unknown or its element has been detached.
func (f *Forge) Alias(name string) (*dom.Element, error) {
	el, err := f.aliases.Get(name)
	if err != nil {
		f.metrics.recordError(err)
		return nil, err
	}
	return el, nil
}

// HasAlias reports whether Alias(name) would succeed.
func (f *Forge) HasAlias(name string) bool {
	return f.aliases.Has(name)
}

// Aliases returns every registered alias name, attached or not.
func (f *Forge) Aliases() []string {
	return f.aliases.Names()
}

// PruneAliases drops aliases whose elements are detached.
func (f *Forge) PruneAliases() int {
	n := f.aliases.Prune()
	if n > 0 {
		f.logger.Debug("aliases pruned", "count", n)
	}
	return n
}

// Adopt wraps an existing node of the document. Non-element nodes fail with
// NotElement.
func (f *Forge) Adopt(n *html.Node) (*dom.Element, error) {
	el, err := f.doc.Wrap(n)
	if err != nil {
		f.metrics.recordError(err)
		return nil, err
	}
	return el, nil
}

// =============================================================================
// States
// =============================================================================

// InitState creates a reactive state and registers it under name,
// replacing any state previously registered under that name.
func (f *Forge) InitState(name string, initial map[string]any) *reactive.State {
	s := reactive.NewState(f.tracker, initial)
	f.states[name] = s
	f.logger.Debug("state initialized", "state", name, "keys", s.Keys())
	return s
}

// State returns the state registered under name.
func (f *Forge) State(name string) (*reactive.State, bool) {
	s, ok := f.states[name]
	return s, ok
}

// States returns the registered state names in sorted order.
func (f *Forge) States() []string {
	names := make([]string, 0, len(f.states))
	for name := range f.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ref returns a reactive value for use in Options.
func (f *Forge) Ref(get func() any) reactive.Value {
	return reactive.Ref(get)
}

// Bind returns a reactive value that reads key from the named state. The
// state is created empty when it does not exist yet. A nil or missing value
// renders as "".
func (f *Forge) Bind(state, key string) reactive.Value {
	if _, ok := f.states[state]; !ok {
		f.InitState(state, nil)
	}
	return f.stateValue(state, key)
}

// stateValue reads key from whichever state is registered under name when
// the value renders. A missing state renders as "".
func (f *Forge) stateValue(name, key string) reactive.Value {
	return reactive.Reactive(func() string {
		s, ok := f.states[name]
		if !ok {
			return ""
		}
		v := s.Get(key)
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	})
}

// Batch groups state writes so each dependent binding updates once.
func (f *Forge) Batch(fn func()) {
	f.tracker.Batch(fn)
}

// Merge deep-merges two plain configuration maps.
func (f *Forge) Merge(base, overrides map[string]any) map[string]any {
	return merge.Deep(base, overrides)
}

// =============================================================================
// Logging
// =============================================================================

// levelHandler gates an inner handler by a LevelVar so dev mode can be
// toggled at runtime whatever handler the caller supplied.
type levelHandler struct {
	level *slog.LevelVar
	inner slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.inner.Enabled(ctx, l)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, inner: h.inner.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, inner: h.inner.WithGroup(name)}
}
