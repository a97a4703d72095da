package pricing

import (
	"math"
	"sort"
	"time"
)

// BlankBand is the band label a blank spreadsheet cell turns into. Blank rows keep it so
// they still match a "nan" selector value.
const BlankBand = "nan"

// Price is an optional decimal price. Valid is false when the source cell was empty or
// did not parse as a number.
type Price struct {
	Value float64
	Valid bool
}

// NoPrice is the absent price.
var NoPrice = Price{}

// NewPrice returns a present price, or NoPrice for NaN and infinities.
func NewPrice(v float64) Price {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NoPrice
	}
	return Price{Value: v, Valid: true}
}

// PriceRow is one (weight band, distance band) tier with a price per vehicle type.
type PriceRow struct {
	WeightBand   string
	DistanceBand string
	Prices       [NumVehicleTypes]Price
}

// Price returns the row's price for v; unknown vehicle types yield NoPrice.
func (r PriceRow) Price(v VehicleType) Price {
	if !v.Valid() {
		return NoPrice
	}
	return r.Prices[v]
}

// PriceTable is the normalized, read-only price table in source order.
type PriceTable struct {
	rows     []PriceRow
	source   string
	loadedAt time.Time
}

// NewPriceTable builds a table from rows. The rows are copied; the table never changes
// afterwards. Bands are kept as given: the loader decides which cells become BlankBand.
func NewPriceTable(source string, rows []PriceRow) *PriceTable {
	cp := make([]PriceRow, len(rows))
	copy(cp, rows)
	return &PriceTable{rows: cp, source: source, loadedAt: time.Now()}
}

// Rows returns a copy of the rows in source order.
func (t *PriceTable) Rows() []PriceRow {
	if t == nil {
		return nil
	}
	cp := make([]PriceRow, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Row returns the i-th row.
func (t *PriceTable) Row(i int) (PriceRow, bool) {
	if t == nil || i < 0 || i >= len(t.rows) {
		return PriceRow{}, false
	}
	return t.rows[i], true
}

func (t *PriceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func (t *PriceTable) Source() string      { return t.source }
func (t *PriceTable) LoadedAt() time.Time { return t.loadedAt }

// WeightBands returns the distinct weight bands, sorted, for the weight selector.
func (t *PriceTable) WeightBands() []string {
	return t.distinct(func(r PriceRow) string { return r.WeightBand })
}

// DistanceBands returns the distinct distance bands, sorted, for the distance selector.
func (t *PriceTable) DistanceBands() []string {
	return t.distinct(func(r PriceRow) string { return r.DistanceBand })
}

func (t *PriceTable) distinct(key func(PriceRow) string) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(t.rows))
	out := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Column returns every valid price for v in source order.
func (t *PriceTable) Column(v VehicleType) []float64 {
	if t == nil || !v.Valid() {
		return nil
	}
	var out []float64
	for _, r := range t.rows {
		if p := r.Prices[v]; p.Valid {
			out = append(out, p.Value)
		}
	}
	return out
}
