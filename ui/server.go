package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"pincheck/adapters/excel"
	"pincheck/app"
	"pincheck/domain/core"
	apperrors "pincheck/internal/errors"

	"github.com/gin-gonic/gin"
)

//go:embed templates/* templates/fragments/* static/*
var embeddedFiles embed.FS

// debugRowLimit caps the rows shown on the debug page so a large sheet
// does not produce a multi-megabyte document.
const debugRowLimit = 200

// Server is the operator-facing web UI: the check form, the schema debug
// view, the coverage report, and the snapshot download.
type Server struct {
	router    *gin.Engine
	checker   *app.CheckerService
	coverage  *app.CoverageService
	snapshots *excel.SnapshotWriter
	templates *template.Template
}

// NewServer creates the web server shell; call Initialize before Start.
func NewServer() *Server {
	return &Server{
		router: gin.Default(),
	}
}

// Initialize wires dependencies, parses the embedded templates, and
// registers middleware and routes.
func (s *Server) Initialize(checker *app.CheckerService, coverage *app.CoverageService, snapshots *excel.SnapshotWriter) error {
	s.checker = checker
	s.coverage = coverage
	s.snapshots = snapshots

	templates, err := template.New("").Funcs(templateFuncs()).ParseFS(
		embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/check", s.handleCheck)
	s.router.GET("/debug", s.handleDebug)
	s.router.GET("/coverage", s.handleCoverage)
	s.router.GET("/snapshot.xlsx", s.handleSnapshot)
	s.router.POST("/reload", s.handleReload)
	s.router.GET("/healthz", s.handleHealthz)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting serviceability UI on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", gin.H{
		"Services": core.AllServiceTypes(),
		"Selected": core.ServiceType(""),
		"Pincode":  "",
		"Loaded":   s.checker.Cached(),
	})
}

// handleCheck answers the form post. HTMX requests get just the result
// fragment; plain posts get the whole page with the result embedded.
func (s *Server) handleCheck(c *gin.Context) {
	serviceRaw := c.PostForm("service")
	pincodeRaw := c.PostForm("pincode")

	result, err := s.checker.Check(c.Request.Context(), serviceRaw, pincodeRaw)
	if err != nil {
		log.Printf("[Check] service=%q pincode=%q: %v", serviceRaw, pincodeRaw, err)
		s.renderCheckError(c, err)
		return
	}

	if isHTMX(c) {
		s.renderTemplate(c, "result.html", result)
		return
	}
	s.renderTemplate(c, "index.html", gin.H{
		"Services": core.AllServiceTypes(),
		"Selected": result.ServiceType,
		"Pincode":  pincodeRaw,
		"Result":   result,
		"Loaded":   s.checker.Cached(),
	})
}

func (s *Server) renderCheckError(c *gin.Context, err error) {
	if isLoadFailure(err) && !isHTMX(c) {
		s.renderLoadError(c, err)
		return
	}

	data := gin.H{
		"Message": userMessage(err),
		"Code":    apperrors.GetCode(err),
	}
	c.Status(statusForError(err))
	if isHTMX(c) {
		s.renderTemplate(c, "error_message.html", data)
		return
	}
	s.renderTemplate(c, "index.html", gin.H{
		"Services": core.AllServiceTypes(),
		"Selected": core.ServiceType(c.PostForm("service")),
		"Pincode":  c.PostForm("pincode"),
		"Error":    data,
		"Loaded":   s.checker.Cached(),
	})
}

func (s *Server) handleDebug(c *gin.Context) {
	lt, err := s.checker.Table(c.Request.Context())
	if err != nil {
		log.Printf("[Debug] load failed: %v", err)
		s.renderLoadError(c, err)
		return
	}

	rows := lt.Table.Rows
	truncated := false
	if len(rows) > debugRowLimit {
		rows = rows[:debugRowLimit]
		truncated = true
	}

	s.renderTemplate(c, "debug.html", gin.H{
		"Headers":     lt.Table.Headers,
		"Rows":        rows,
		"TotalRows":   lt.Table.Len(),
		"Truncated":   truncated,
		"Fields":      lt.Resolution.Fields,
		"Synthetic":   lt.Resolution.Synthetic,
		"Attempts":    lt.Attempts,
		"SourceURL":   lt.SourceURL,
		"ContentHash": lt.ContentHash.Short(),
		"LoadedAt":    lt.LoadedAt,
	})
}

func (s *Server) handleCoverage(c *gin.Context) {
	lt, err := s.checker.Table(c.Request.Context())
	if err != nil {
		log.Printf("[Coverage] load failed: %v", err)
		s.renderLoadError(c, err)
		return
	}
	s.renderTemplate(c, "coverage.html", s.coverage.Report(lt))
}

// handleSnapshot streams the current table as an xlsx workbook.
func (s *Server) handleSnapshot(c *gin.Context) {
	lt, err := s.checker.Table(c.Request.Context())
	if err != nil {
		log.Printf("[Snapshot] load failed: %v", err)
		c.JSON(statusForError(err), gin.H{"error": userMessage(err)})
		return
	}

	filename := fmt.Sprintf("serviceability-%s.xlsx", lt.LoadedAt.Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	snap := excel.Snapshot{
		Table:       lt.Table,
		Resolution:  lt.Resolution,
		Attempts:    lt.Attempts,
		SourceURL:   lt.SourceURL,
		ContentHash: lt.ContentHash,
		LoadedAt:    lt.LoadedAt,
	}
	if err := s.snapshots.Write(c.Writer, snap); err != nil {
		log.Printf("[Snapshot] write failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) handleReload(c *gin.Context) {
	s.checker.Invalidate()
	c.Redirect(http.StatusSeeOther, "/debug")
}

func (s *Server) handleHealthz(c *gin.Context) {
	payload := gin.H{"status": "ok"}
	if lt := s.checker.Cached(); lt != nil {
		payload["rows"] = lt.Table.Len()
		payload["loaded_at"] = lt.LoadedAt.Format(time.RFC3339)
		payload["source_url"] = lt.SourceURL
		payload["content_hash"] = lt.ContentHash.Short()
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) renderLoadError(c *gin.Context, err error) {
	c.Status(statusForError(err))
	s.renderTemplate(c, "load_error.html", gin.H{
		"Message":  userMessage(err),
		"Code":     apperrors.GetCode(err),
		"Attempts": loadAttempts(err),
	})
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
