package pricing

import "strings"

// Filter selects rows by band. A nil field leaves that band unfiltered.
type Filter struct {
	Weight   *string
	Distance *string
}

// NewFilter converts selector values into a Filter. An empty value, or one equal to any of
// the unfiltered sentinels ("Select Estimated Weight", "Todos", ...), leaves the band open.
func NewFilter(weight, distance string, sentinels ...string) Filter {
	return Filter{
		Weight:   selectorValue(weight, sentinels),
		Distance: selectorValue(distance, sentinels),
	}
}

// ByBands filters on both bands.
func ByBands(weight, distance string) Filter {
	return Filter{Weight: &weight, Distance: &distance}
}

func selectorValue(v string, sentinels []string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, s := range sentinels {
		if v == s {
			return nil
		}
	}
	return &v
}

// IsEmpty reports whether no band is filtered.
func (f Filter) IsEmpty() bool {
	return f.Weight == nil && f.Distance == nil
}

// WeightValue returns the weight filter or "".
func (f Filter) WeightValue() string {
	if f.Weight == nil {
		return ""
	}
	return *f.Weight
}

// DistanceValue returns the distance filter or "".
func (f Filter) DistanceValue() string {
	if f.Distance == nil {
		return ""
	}
	return *f.Distance
}

// Matches reports whether r satisfies every set field, by exact string equality.
func (f Filter) Matches(r PriceRow) bool {
	if f.Weight != nil && r.WeightBand != *f.Weight {
		return false
	}
	if f.Distance != nil && r.DistanceBand != *f.Distance {
		return false
	}
	return true
}

// Find returns the rows of t matching f in table order. An empty filter returns every row.
// Duplicate band pairs are all returned; picking one is the caller's decision.
func Find(t *PriceTable, f Filter) []PriceRow {
	if t == nil {
		return []PriceRow{}
	}
	if f.IsEmpty() {
		return t.Rows()
	}
	out := make([]PriceRow, 0, 1)
	for _, r := range t.rows {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
