package services

import (
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"pricetable/app"
	"pricetable/domain/core"
	"pricetable/domain/pricing"
	"pricetable/internal"
	"pricetable/internal/config"
	"pricetable/ports"
)

// Variant names one of the two layouts of the price page
type Variant string

const (
	VariantWide    Variant = "wide"
	VariantCompact Variant = "compact"
)

// Selector sentinels meaning "no filter"
const (
	WeightPlaceholder   = "Select Estimated Weight"
	DistancePlaceholder = "Select Distance"
	AllPlaceholder      = "Todos"
)

// NoResultsText is the warning shown when the filters match no row
const NoResultsText = "No results found for selected filters."

// Sentinels lists every selector value that leaves a band unfiltered
var Sentinels = []string{WeightPlaceholder, DistancePlaceholder, AllPlaceholder}

// Banner is a message shown above the page content
type Banner struct {
	Level string // "error" or "warning"
	Text  string
}

// SelectOption is one entry of a band selector
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// Selector is a band dropdown
type Selector struct {
	Name    string
	Label   string
	Options []SelectOption
}

// VehicleCard is one price card
type VehicleCard struct {
	Name      string
	Image     ports.Image
	PriceText string
	State     app.CardState
	RangeText string
}

// PageView is everything a price page template renders
type PageView struct {
	Title          string
	Footer         string
	Variant        Variant
	Path           string
	Background     ports.Image
	Banners        []Banner
	TableAvailable bool
	Weight         Selector
	Distance       Selector
	Cards          []VehicleCard
	NoResults      bool
	Warning        string
	Matches        int
	NotesHTML      template.HTML
}

// PageService assembles page views from the lookup service and the image store
type PageService struct {
	tables ports.PriceTableProvider
	lookup *app.PriceLookupService
	assets ports.AssetStore
	notes  *NotesService
	page   config.PageConfig
	logger *internal.Logger
}

// NewPageService creates a page service
func NewPageService(tables ports.PriceTableProvider, lookup *app.PriceLookupService, assets ports.AssetStore, notes *NotesService, page config.PageConfig, logger *internal.Logger) *PageService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PageService{
		tables: tables,
		lookup: lookup,
		assets: assets,
		notes:  notes,
		page:   page,
		logger: logger.Named("PageService"),
	}
}

// ParseFilter turns the raw query values into a filter
func ParseFilter(weight, distance string) pricing.Filter {
	return pricing.NewFilter(weight, distance, Sentinels...)
}

// BuildPage assembles the page for one selection. It never fails: load problems become
// banners and the rest of the page still renders.
func (s *PageService) BuildPage(ctx context.Context, variant Variant, weight, distance string) *PageView {
	view := &PageView{
		Title:   s.page.Title,
		Footer:  s.page.FooterText,
		Variant: variant,
		Path:    variantPath(variant),
	}
	if s.notes != nil {
		view.NotesHTML = s.notes.HTML()
	}

	if s.page.BackgroundImage != "" {
		view.Background = s.assets.Image(s.page.BackgroundImage)
		if view.Background.Missing {
			view.Banners = append(view.Banners, Banner{Level: "error", Text: fmt.Sprintf("ERROR: Image file '%s' not found.", s.page.BackgroundImage)})
		}
	}

	table, err := s.tables.Table(ctx)
	if err != nil {
		view.Banners = append(view.Banners, loadErrorBanner(s.tables.Source(), err))
		return view
	}
	view.TableAvailable = true

	filter := ParseFilter(weight, distance)
	weightPlaceholder, distancePlaceholder := WeightPlaceholder, DistancePlaceholder
	if variant == VariantCompact {
		weightPlaceholder, distancePlaceholder = AllPlaceholder, AllPlaceholder
	}
	view.Weight = buildSelector("weight", "Estimated Weight", weightPlaceholder, table.WeightBands(), filter.WeightValue())
	view.Distance = buildSelector("distance", "Distance", distancePlaceholder, table.DistanceBands(), filter.DistanceValue())

	cards, quote, err := s.Cards(ctx, filter)
	if err != nil {
		view.Banners = append(view.Banners, loadErrorBanner(s.tables.Source(), err))
		return view
	}
	view.Cards = cards
	view.NoResults = quote.NoResults
	view.Matches = quote.Matches
	if quote.NoResults {
		view.Warning = NoResultsText
	}
	return view
}

// Cards builds the seven vehicle cards for a filter
func (s *PageService) Cards(ctx context.Context, filter pricing.Filter) ([]VehicleCard, *app.Quote, error) {
	quote, err := s.lookup.Quote(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	var ranges []app.PriceRange
	if !quote.Filtered {
		ranges, err = s.lookup.Summary(ctx)
		if err != nil {
			s.logger.Warn("Price summary unavailable: %v", err)
		}
	}

	cards := make([]VehicleCard, 0, len(quote.Cards))
	for i, price := range quote.Cards {
		card := VehicleCard{
			Name:      price.Vehicle.DisplayName(),
			Image:     s.assets.VehicleImage(price.Vehicle),
			PriceText: price.Text,
			State:     price.State,
		}
		if i < len(ranges) && ranges[i].Available {
			card.RangeText = fmt.Sprintf("from %s to %s",
				s.lookup.FormatPrice(pricing.NewPrice(ranges[i].Min)),
				s.lookup.FormatPrice(pricing.NewPrice(ranges[i].Max)))
		}
		cards = append(cards, card)
	}
	return cards, quote, nil
}

func loadErrorBanner(source string, err error) Banner {
	if core.IsNotFoundError(err) {
		return Banner{Level: "error", Text: fmt.Sprintf("ERROR: File '%s' not found.", filepath.Base(source))}
	}
	return Banner{Level: "error", Text: fmt.Sprintf("ERROR: price table could not be loaded: %v", err)}
}

func buildSelector(name, label, placeholder string, values []string, selected string) Selector {
	sel := Selector{Name: name, Label: label, Options: make([]SelectOption, 0, len(values)+1)}
	sel.Options = append(sel.Options, SelectOption{Value: "", Label: placeholder, Selected: selected == ""})
	for _, v := range values {
		if v == "" {
			// an empty band cannot be told apart from "no filter" in a query string
			continue
		}
		sel.Options = append(sel.Options, SelectOption{Value: v, Label: v, Selected: v == selected})
	}
	return sel
}

func variantPath(v Variant) string {
	if v == VariantCompact {
		return "/compact"
	}
	return "/"
}

// BuildCards assembles only what the card grid fragment needs
func (s *PageService) BuildCards(ctx context.Context, weight, distance string) (*PageView, error) {
	cards, quote, err := s.Cards(ctx, ParseFilter(weight, distance))
	if err != nil {
		return nil, err
	}
	view := &PageView{
		TableAvailable: true,
		Cards:          cards,
		NoResults:      quote.NoResults,
		Matches:        quote.Matches,
	}
	if quote.NoResults {
		view.Warning = NoResultsText
	}
	return view, nil
}
