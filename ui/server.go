package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"pricetable/app"
	"pricetable/ports"
	"pricetable/ui/services"

	"github.com/gin-gonic/gin"
)

// Dependencies are the services both web front ends are built on
type Dependencies struct {
	Tables ports.PriceTableProvider
	Lookup *app.PriceLookupService
	Pages  *services.PageService
}

func (d Dependencies) validate() error {
	if d.Tables == nil || d.Lookup == nil || d.Pages == nil {
		return fmt.Errorf("tables, lookup and pages services are required")
	}
	return nil
}

// Server is the gin web server for the price pages
type Server struct {
	router        *gin.Engine
	embeddedFiles fs.FS
	templates     *template.Template
	render        *services.RenderService

	tables ports.PriceTableProvider
	lookup *app.PriceLookupService
	pages  *services.PageService
}

// NewServer creates a new web server instance. A nil files argument uses the templates
// and static files compiled into the binary.
func NewServer(files fs.FS) *Server {
	if files == nil {
		files = embeddedFiles
	}
	return &Server{
		router:        gin.New(),
		embeddedFiles: files,
	}
}

// Initialize sets up the server with dependencies
func (s *Server) Initialize(deps Dependencies) error {
	if err := deps.validate(); err != nil {
		return err
	}
	s.tables = deps.Tables
	s.lookup = deps.Lookup
	s.pages = deps.Pages

	templates, err := parseTemplates(s.embeddedFiles)
	if err != nil {
		return err
	}
	s.templates = templates
	s.render = services.NewRenderService(templates)
	log.Printf("[TemplateInit] Parsed templates: %s", templates.DefinedTemplates())

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	// Pages
	s.router.GET("/", s.handleIndex)
	s.router.GET("/compact", s.handleCompact)

	// Fragment endpoint for in-place card refreshes
	s.router.GET("/api/fragments/cards", s.handleCardsFragment)

	// JSON API
	s.router.GET("/api/prices", s.handlePrices)
	s.router.GET("/api/bands", s.handleBands)
	s.router.GET("/api/summary", s.handleSummary)

	s.router.GET("/healthz", s.handleHealth)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
