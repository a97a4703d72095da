package services

import (
	"errors"
	"html/template"
	"io/fs"
	"os"
	"sync"

	"pricetable/internal"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// NotesService renders the optional markdown notes file shown above the page footer.
// The file is rendered once; a missing file means no notes.
type NotesService struct {
	path   string
	logger *internal.Logger

	once sync.Once
	html template.HTML
}

// NewNotesService creates a notes service for path. An empty path disables notes.
func NewNotesService(path string, logger *internal.Logger) *NotesService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &NotesService{path: path, logger: logger.Named("Notes")}
}

// HTML returns the rendered notes
func (n *NotesService) HTML() template.HTML {
	n.once.Do(func() {
		if n.path == "" {
			return
		}
		source, err := os.ReadFile(n.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				n.logger.Warn("Notes file %q not found", n.path)
			} else {
				n.logger.Error("Failed to read notes file %q: %v", n.path, err)
			}
			return
		}
		n.html = RenderMarkdown(source)
	})
	return n.html
}

// RenderMarkdown converts markdown to HTML. Raw HTML in the source is skipped.
func RenderMarkdown(source []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML | html.HrefTargetBlank,
	})
	return template.HTML(markdown.ToHTML(source, p, renderer))
}
