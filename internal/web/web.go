// Package web serves the single-page converter UI backed by the conversion API.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/go-hclog"

	"github.com/baseconv/baseconv/internal/domain"
)

// Title is shown in the page heading and browser tab.
const Title = "Number Base Converter"

//go:embed templates/index.html
var templates embed.FS

type pageBase struct {
	Name    string
	Title   string
	Example string
}

type pageData struct {
	Title     string
	APIPrefix string
	Bases     []pageBase
}

// Page serves the pre-rendered converter page.
// NewPage should be used to create instances of Page.
type Page struct {
	logger hclog.Logger
	body   []byte
}

// NewPage renders the converter page once, pointing its requests at apiPrefix (e.g. "/api/v1").
func NewPage(logger hclog.Logger, apiPrefix string) (*Page, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	data := pageData{
		Title:     Title,
		APIPrefix: apiPrefix,
	}
	for _, b := range domain.Bases() {
		data.Bases = append(data.Bases, pageBase{
			Name:    b.String(),
			Title:   b.Title(),
			Example: b.Example(),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page template: %w", err)
	}

	return &Page{
		logger: logger.Named("web"),
		body:   buf.Bytes(),
	}, nil
}

// ServeHTTP writes the rendered page.
func (p *Page) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(p.body); err != nil {
		p.logger.Warn("Failed to write page", "error", err)
	}
}

// RegisterRoutes mounts the page at the root of the router.
func RegisterRoutes(router chi.Router, page *Page) {
	router.Get("/", page.ServeHTTP)
}
