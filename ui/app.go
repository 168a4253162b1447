package ui

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pincheck/app"
	"pincheck/domain/core"
	"pincheck/domain/schema"
	apperrors "pincheck/internal/errors"
	"pincheck/ports"
)

// App is the JSON API surface, served separately from the web UI so
// programmatic callers never depend on the HTML routes.
type App struct {
	config   Config
	router   *chi.Mux
	checker  *app.CheckerService
	coverage *app.CoverageService
}

// Config holds API application configuration
type Config struct {
	Port string
}

// NewApp creates the JSON API application.
func NewApp(config Config, checker *app.CheckerService, coverage *app.CoverageService) *App {
	a := &App{
		config:   config,
		router:   chi.NewRouter(),
		checker:  checker,
		coverage: coverage,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/api/serviceability", a.handleServiceability)
	a.router.Get("/api/table", a.handleTable)
	a.router.Get("/api/coverage", a.handleCoverage)
	a.router.Post("/api/reload", a.handleReload)
	a.router.Get("/api/healthz", a.handleHealthz)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Port
	log.Printf("Starting serviceability API on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the handler for tests and embedding.
func (a *App) Router() http.Handler {
	return a.router
}

// handleServiceability answers GET /api/serviceability?service=&pincode=.
func (a *App) handleServiceability(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("service")
	pincode := r.URL.Query().Get("pincode")

	result, err := a.checker.Check(r.Context(), service, pincode)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

// tableResponse is the wire shape of GET /api/table.
type tableResponse struct {
	Headers     []string             `json:"headers"`
	Rows        []core.Row           `json:"rows"`
	TotalRows   int                  `json:"total_rows"`
	Fields      schema.FieldMap      `json:"fields"`
	Synthetic   []string             `json:"synthetic_columns,omitempty"`
	Attempts    []ports.FetchAttempt `json:"attempts"`
	SourceURL   string               `json:"source_url"`
	ContentHash string               `json:"content_hash"`
	LoadedAt    time.Time            `json:"loaded_at"`
}

// handleTable returns the loaded table plus its resolution metadata.
// ?limit=N truncates the row list; the full row count is always reported.
func (a *App) handleTable(w http.ResponseWriter, r *http.Request) {
	lt, err := a.checker.Table(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	rows := lt.Table.Rows
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 0 && limit < len(rows) {
			rows = rows[:limit]
		}
	}

	a.writeJSON(w, http.StatusOK, tableResponse{
		Headers:     lt.Table.Headers,
		Rows:        rows,
		TotalRows:   lt.Table.Len(),
		Fields:      lt.Resolution.Fields,
		Synthetic:   lt.Resolution.Synthetic,
		Attempts:    lt.Attempts,
		SourceURL:   lt.SourceURL,
		ContentHash: lt.ContentHash.String(),
		LoadedAt:    lt.LoadedAt,
	})
}

func (a *App) handleCoverage(w http.ResponseWriter, r *http.Request) {
	lt, err := a.checker.Table(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, a.coverage.Report(lt))
}

func (a *App) handleReload(w http.ResponseWriter, r *http.Request) {
	a.checker.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{"status": "ok"}
	if lt := a.checker.Cached(); lt != nil {
		payload["rows"] = lt.Table.Len()
		payload["loaded_at"] = lt.LoadedAt.Format(time.RFC3339)
		payload["content_hash"] = lt.ContentHash.Short()
	}
	a.writeJSON(w, http.StatusOK, payload)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Error encoding response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	payload := map[string]interface{}{
		"error": userMessage(err),
		"code":  apperrors.GetCode(err),
	}
	if attempts := loadAttempts(err); len(attempts) > 0 {
		payload["attempts"] = attempts
	}
	a.writeJSON(w, statusForError(err), payload)
}
