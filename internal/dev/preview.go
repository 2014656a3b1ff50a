package dev

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/forge/internal/config"
	"github.com/vango-dev/forge/internal/errors"
	"github.com/vango-dev/forge/pkg/dom"
	"github.com/vango-dev/forge/pkg/forge"
)

// PreviewOptions configures the preview server.
type PreviewOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger receives server and forge logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Registry collects forge metrics. Defaults to a fresh registry.
	Registry *prometheus.Registry

	// OnReload is called after archetype files are reloaded.
	OnReload func(files []string, err error)
}

// PreviewServer serves one Forge over HTTP. Every Forge call happens with
// mu held; the Forge itself is not safe for concurrent use.
type PreviewServer struct {
	config     *config.Config
	options    PreviewOptions
	logger     *slog.Logger
	registry   *prometheus.Registry
	reload     *ReloadServer
	router     chi.Router
	httpServer *http.Server

	mu    sync.Mutex
	forge *forge.Forge
}

// archetypeInfo is one entry of GET /archetypes.
type archetypeInfo struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// NewPreviewServer builds the document and Forge described by the config
// and loads its archetype files.
func NewPreviewServer(opts PreviewOptions) (*PreviewServer, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	f, err := NewForge(cfg, logger, forge.NewMetrics(forge.WithRegistry(registry)))
	if err != nil {
		return nil, err
	}

	s := &PreviewServer{
		config:   cfg,
		options:  opts,
		logger:   logger.With("component", "preview"),
		registry: registry,
		reload:   NewReloadServer(logger),
		forge:    f,
	}
	s.router = s.routes()
	return s, nil
}

// NewForge creates a Forge from cfg: base document, toggles, seeded states
// and archetype files, in that order.
func NewForge(cfg *config.Config, logger *slog.Logger, metrics *forge.Metrics) (*forge.Forge, error) {
	doc, err := loadDocument(cfg.DocumentPath())
	if err != nil {
		return nil, err
	}

	f := forge.New(doc,
		forge.WithLogger(logger),
		forge.WithDev(cfg.Dev),
		forge.WithStrictAlias(cfg.StrictAlias),
		forge.WithMaxNotifyDepth(cfg.MaxNotifyDepth),
		forge.WithMetrics(metrics),
	)

	for name, initial := range cfg.States {
		f.InitState(name, initial)
	}
	for _, path := range cfg.ArchetypePaths() {
		if _, err := f.LoadArchetypeFile(path); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func loadDocument(path string) (*dom.Document, error) {
	if path == "" {
		return dom.NewDocument(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithSubject(path).
			WithDetail("The base document could not be opened.").
			Wrap(err)
	}
	defer file.Close()
	return dom.Parse(file)
}

// Handler returns the HTTP handler for the preview routes.
func (s *PreviewServer) Handler() http.Handler {
	return s.router
}

// Reload returns the live reload hub.
func (s *PreviewServer) Reload() *ReloadServer {
	return s.reload
}

// WithForge runs fn with exclusive access to the Forge.
func (s *PreviewServer) WithForge(fn func(f *forge.Forge)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.forge)
}

func (s *PreviewServer) routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.handleDocument)
	r.Get("/archetypes", s.handleArchetypes)
	r.Get("/archetypes/{name}", s.handleArchetype)
	r.Post("/archetypes/{name}", s.handleInstantiate)
	r.Get("/state/{name}", s.handleState)
	r.Post("/state/{name}/{key}", s.handleSetState)
	r.Get("/ws", s.reload.HandleWebSocket)
	if s.config.Preview.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return r
}

func (s *PreviewServer) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	page := s.forge.Document().String()
	s.mu.Unlock()

	if i := strings.LastIndex(page, "</body>"); i >= 0 {
		page = page[:i] + ClientScript + page[i:]
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, page)
}

func (s *PreviewServer) handleArchetypes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	names := s.forge.Archetypes()
	list := make([]archetypeInfo, 0, len(names))
	for _, name := range names {
		tag, _, _ := s.forge.Archetype(name)
		list = append(list, archetypeInfo{Name: name, Tag: tag})
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

// handleArchetype renders a detached instance and disposes it.
func (s *PreviewServer) handleArchetype(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	el, err := s.forge.PreviewArchetype(r.Context(), name, forge.Options{})
	var markup string
	if err == nil {
		markup = el.OuterHTML()
		el.Dispose()
	}
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, markup)
}

func (s *PreviewServer) handleInstantiate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	into := r.URL.Query().Get("into")
	if into == "" {
		into = s.config.Into
	}

	s.mu.Lock()
	markup, err := s.instantiate(r.Context(), name, into)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	s.reload.NotifyReload("")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	io.WriteString(w, markup)
}

// instantiate must be called with mu held. The parent is resolved first so
// a bad selector fails before the archetype's alias is registered.
func (s *PreviewServer) instantiate(ctx context.Context, name, into string) (string, error) {
	parent, err := dom.Selector(into).Resolve(s.forge.Document())
	if err != nil {
		return "", err
	}
	el, err := s.forge.UseArchetypeContext(ctx, name, forge.Options{})
	if err != nil {
		return "", err
	}
	if _, err := el.Into(parent); err != nil {
		el.Dispose()
		return "", err
	}
	return el.OuterHTML(), nil
}

func (s *PreviewServer) handleState(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	state, ok := s.forge.State(name)
	var snapshot map[string]any
	if ok {
		snapshot = state.Snapshot()
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown state " + name})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *PreviewServer) handleSetState(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	key := chi.URLParam(r, "key")

	var value any
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&value); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be a JSON value"})
		return
	}

	s.mu.Lock()
	state, ok := s.forge.State(name)
	if ok {
		state.Set(key, value)
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown state " + name})
		return
	}
	s.logger.Debug("state set", "state", name, "key", key)
	s.reload.NotifyReload("")
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps forge error codes to HTTP statuses.
func (s *PreviewServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code, ok := errors.CodeOf(err)
	if ok {
		switch code {
		case errors.CodeUnknownArchetype, errors.CodeParentNotFound, errors.CodeElementGone:
			status = http.StatusNotFound
		case errors.CodeDuplicateAlias:
			status = http.StatusConflict
		case errors.CodeNotElement, errors.CodeInvalidSelector:
			status = http.StatusBadRequest
		}
	}
	writeJSON(w, status, map[string]any{
		"code":  int(code),
		"error": errors.Compact(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ReloadArchetypes re-reads every configured archetype file. A failure is
// shown in connected browsers; success clears the overlay and reloads.
func (s *PreviewServer) ReloadArchetypes(files []string) error {
	var err error
	s.mu.Lock()
	for _, path := range s.config.ArchetypePaths() {
		if _, err = s.forge.LoadArchetypeFile(path); err != nil {
			break
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("archetype reload failed", "error", err)
		s.reload.NotifyError(errors.Compact(err))
	} else {
		s.logger.Info("archetypes reloaded", "files", files)
		s.reload.ClearError()
		s.reload.NotifyReload(strings.Join(files, ","))
	}
	if s.options.OnReload != nil {
		s.options.OnReload(files, err)
	}
	return err
}

// Start serves until ctx is cancelled. When watching is enabled archetype
// files are reloaded as they change.
func (s *PreviewServer) Start(ctx context.Context) error {
	if s.config.Preview.Watch && len(s.config.Archetypes) > 0 {
		watcher, err := NewWatcher(WatcherConfig{Files: s.config.ArchetypePaths()})
		if err != nil {
			return err
		}
		changes, err := watcher.Start()
		if err != nil {
			watcher.Stop()
			return err
		}
		defer watcher.Stop()
		go s.watch(ctx, changes, watcher.Errors())
	}

	s.httpServer = &http.Server{
		Addr:              s.config.PreviewAddress(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "url", s.config.PreviewURL())
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.reload.Close()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *PreviewServer) watch(ctx context.Context, changes <-chan string, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case file, ok := <-changes:
			if !ok {
				return
			}
			s.ReloadArchetypes([]string{file})
		case err := <-errs:
			s.logger.Warn("watcher error", "error", err)
		}
	}
}
