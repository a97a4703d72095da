package ui

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pricetable/app"
	apperrors "pricetable/internal/errors"
	"pricetable/ports"
	"pricetable/ui/services"
	"pricetable/ui/templates/fragments"
)

// App is the lightweight chi front end serving the same pages as Server
type App struct {
	router    *chi.Mux
	templates *template.Template
	render    *services.RenderService
	tables    ports.PriceTableProvider
	lookup    *app.PriceLookupService
	pages     *services.PageService
	config    Config
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(config Config, deps Dependencies) (*App, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if config.Port == "" {
		config.Port = "8080"
	}

	templates, err := parseTemplates(embeddedFiles)
	if err != nil {
		return nil, err
	}

	a := &App{
		router:    chi.NewRouter(),
		templates: templates,
		render:    services.NewRenderService(templates),
		tables:    deps.Tables,
		lookup:    deps.Lookup,
		pages:     deps.Pages,
		config:    config,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("Error creating static filesystem: %v", err)
		return
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/compact", a.handleCompact)
	a.router.Get("/api/fragments/cards", a.handleCardsFragment)
	a.router.Get("/api/prices", a.handlePrices)
	a.router.Get("/healthz", a.handleHealth)
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Port
	log.Printf("Starting price table UI on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := a.pages.BuildPage(r.Context(), services.VariantWide, q.Get("weight"), q.Get("distance"))
	a.renderTemplate(w, http.StatusOK, fragments.IndexPage, view)
}

func (a *App) handleCompact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := a.pages.BuildPage(r.Context(), services.VariantCompact, q.Get("weight"), q.Get("distance"))
	a.renderTemplate(w, http.StatusOK, fragments.CompactPage, view)
}

func (a *App) handleCardsFragment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := a.pages.BuildCards(r.Context(), q.Get("weight"), q.Get("distance"))
	if err != nil {
		a.renderTemplate(w, apperrors.StatusFor(err), fragments.Banners, &services.PageView{
			Banners: []services.Banner{{Level: "error", Text: err.Error()}},
		})
		return
	}
	a.renderTemplate(w, http.StatusOK, fragments.CardsGrid, view)
}

func (a *App) handlePrices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quote, err := a.lookup.Quote(r.Context(), services.ParseFilter(q.Get("weight"), q.Get("distance")))
	if err != nil {
		writeJSON(w, apperrors.StatusFor(err), map[string]string{
			"error":      err.Error(),
			"code":       apperrors.GetCode(err),
			"request_id": middleware.GetReqID(r.Context()),
		})
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	table, err := a.tables.Table(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"source": a.tables.Source(),
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"source": table.Source(),
		"rows":   table.Len(),
	})
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	content, err := a.render.Render(templateName, data)
	if err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(content)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}
