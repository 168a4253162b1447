package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// templateFuncs returns the helpers shared by every page template. The
// pointer helpers exist because a non-nil *bool is truthy to the template
// engine even when it points at false.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
		"inr": func(f float64) string { return fmt.Sprintf("₹%.2f", f) },
		"float": func(f *float64) float64 {
			if f == nil {
				return 0
			}
			return *f
		},
		"boolSet": func(b *bool) bool { return b != nil },
		"boolVal": func(b *bool) bool { return b != nil && *b },
		"add":     func(a, b int) int { return a + b },
		"formatTime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04:05")
		},
		"upper":    strings.ToUpper,
		"markdown": renderMarkdown,
	}
}

// renderMarkdown renders a sheet remark for display. Remarks come from a
// remote sheet, so raw HTML in the cell is skipped rather than passed
// through.
func renderMarkdown(text string) template.HTML {
	if text == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML,
	})
	return template.HTML(markdown.ToHTML([]byte(text), p, renderer))
}

// renderTemplate executes a template with the given data. Rendering goes
// to a buffer first so a template error can still become a clean 500
// instead of a half-written page.
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}
