package services

import (
	"bytes"
	"html/template"
)

// RenderService executes page templates into memory so a failed render never writes a
// half page
type RenderService struct {
	templates *template.Template
}

func NewRenderService(templates *template.Template) *RenderService {
	return &RenderService{
		templates: templates,
	}
}

// Render executes the named template and returns the output
func (s *RenderService) Render(templateName string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
