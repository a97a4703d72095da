package app

import (
	"context"

	"pricetable/domain/pricing"
	"pricetable/ports"

	"github.com/montanaflynn/stats"
)

// CardState tells the page what a vehicle card shows
type CardState string

const (
	StateSelectFilters CardState = "select_filters"
	StatePrice         CardState = "price"
	StateUnavailable   CardState = "unavailable"
)

// SelectFiltersText is shown on cards until a filter narrows the table
const SelectFiltersText = "Select filters"

// CardPrice is the display-ready price of one vehicle
type CardPrice struct {
	Vehicle pricing.VehicleType `json:"-"`
	Label   string              `json:"vehicle"`
	Text    string              `json:"text"`
	State   CardState           `json:"state"`
	Value   *float64            `json:"value,omitempty"`
}

// Quote is the lookup result for one filter selection
type Quote struct {
	Weight    string      `json:"weight,omitempty"`
	Distance  string      `json:"distance,omitempty"`
	Filtered  bool        `json:"filtered"`
	Matches   int         `json:"matches"`
	NoResults bool        `json:"no_results"`
	Cards     []CardPrice `json:"cards"`
}

// PriceRange summarizes one vehicle's prices across the whole table
type PriceRange struct {
	Vehicle   pricing.VehicleType `json:"-"`
	Label     string              `json:"vehicle"`
	Count     int                 `json:"count"`
	Min       float64             `json:"min"`
	Median    float64             `json:"median"`
	Max       float64             `json:"max"`
	Available bool                `json:"available"`
}

// PriceLookupService answers filter selections against the cached price table
type PriceLookupService struct {
	tables         ports.PriceTableProvider
	currencyPrefix string
}

// NewPriceLookupService creates a lookup service. An empty prefix means "R$".
func NewPriceLookupService(tables ports.PriceTableProvider, currencyPrefix string) *PriceLookupService {
	if currencyPrefix == "" {
		currencyPrefix = pricing.DefaultCurrencyPrefix
	}
	return &PriceLookupService{tables: tables, currencyPrefix: currencyPrefix}
}

// Find returns every row matching the filter, in table order
func (s *PriceLookupService) Find(ctx context.Context, filter pricing.Filter) ([]pricing.PriceRow, error) {
	table, err := s.tables.Table(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.Find(table, filter), nil
}

// Quote builds the card prices for a filter selection. Without a filter every card asks
// for a selection. With a filter the first matching row prices the cards; when nothing
// matches the quote is flagged NoResults and the cards keep asking for a selection.
func (s *PriceLookupService) Quote(ctx context.Context, filter pricing.Filter) (*Quote, error) {
	rows, err := s.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Weight:   filter.WeightValue(),
		Distance: filter.DistanceValue(),
		Filtered: !filter.IsEmpty(),
		Cards:    make([]CardPrice, 0, pricing.NumVehicleTypes),
	}
	if quote.Filtered {
		quote.Matches = len(rows)
		quote.NoResults = len(rows) == 0
	}

	for _, v := range pricing.AllVehicleTypes() {
		card := CardPrice{Vehicle: v, Label: v.Label(), Text: SelectFiltersText, State: StateSelectFilters}
		if quote.Filtered && len(rows) > 0 {
			card = s.priceCard(v, rows[0].Price(v))
		}
		quote.Cards = append(quote.Cards, card)
	}
	return quote, nil
}

func (s *PriceLookupService) priceCard(v pricing.VehicleType, p pricing.Price) CardPrice {
	card := CardPrice{Vehicle: v, Label: v.Label(), Text: s.FormatPrice(p)}
	if card.Text == pricing.UnavailableText {
		card.State = StateUnavailable
		return card
	}
	value := p.Value
	card.State = StatePrice
	card.Value = &value
	return card
}

// FormatPrice formats p with the configured currency prefix
func (s *PriceLookupService) FormatPrice(p pricing.Price) string {
	return pricing.FormatPriceWith(p, s.currencyPrefix)
}

// Summary returns min, median and max per vehicle across all rows with a valid price
func (s *PriceLookupService) Summary(ctx context.Context) ([]PriceRange, error) {
	table, err := s.tables.Table(ctx)
	if err != nil {
		return nil, err
	}

	ranges := make([]PriceRange, 0, pricing.NumVehicleTypes)
	for _, v := range pricing.AllVehicleTypes() {
		r := PriceRange{Vehicle: v, Label: v.Label()}
		column := stats.Float64Data(table.Column(v))
		r.Count = column.Len()
		if r.Count > 0 {
			// stats only errors on empty input, ruled out above
			r.Min, _ = column.Min()
			r.Median, _ = column.Median()
			r.Max, _ = column.Max()
			r.Available = true
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
