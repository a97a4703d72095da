// Package fragments provides template name constants for the price pages
package fragments

// Page templates
const (
	IndexPage   = "index.html"
	CompactPage = "compact.html"
)

// Fragment templates, rendered on their own for partial refreshes
const (
	CardsGrid = "cards"
	Banners   = "banners"
	Filters   = "filters"
)

// GetAllTemplatePaths returns every template a server must be able to render
func GetAllTemplatePaths() []string {
	return []string{
		IndexPage,
		CompactPage,
		CardsGrid,
		Banners,
		Filters,
	}
}
