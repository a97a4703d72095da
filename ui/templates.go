package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"strings"

	"pricetable/app"
	"pricetable/ports"
	"pricetable/ui/services"
	"pricetable/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

// templateFuncs are shared by both page variants
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// Vehicle images are inlined as data: URIs built by the asset store.
		"dataURL": func(uri string) template.URL {
			if !strings.HasPrefix(uri, "data:image/") {
				return ""
			}
			return template.URL(uri)
		},
		"backgroundStyle": func(img ports.Image) template.CSS {
			if img.Missing || !strings.HasPrefix(img.DataURI, "data:image/") {
				return ""
			}
			return template.CSS(fmt.Sprintf(`body { background-image: url("%s"); }`, img.DataURI))
		},
		"priceClass": func(state app.CardState) string {
			if state == app.StatePrice {
				return "vehicle-price"
			}
			return "price-not-available"
		},
		"selectors": func(view *services.PageView) []services.Selector {
			return []services.Selector{view.Weight, view.Distance}
		},
	}
}

// parseTemplates parses the page and fragment templates from the embedded FS and checks
// every expected template is present
func parseTemplates(files fs.FS) (*template.Template, error) {
	templates, err := template.New("").Funcs(templateFuncs()).ParseFS(files, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	for _, name := range fragments.GetAllTemplatePaths() {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("template %s is missing", name)
		}
	}
	return templates, nil
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// Render to a buffer first so a template error never leaves a half written page
	content, err := s.render.Render(templateName, data)
	if err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}
	c.Data(status, "text/html; charset=utf-8", content)
}
