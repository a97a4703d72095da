package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTable() *PriceTable {
	row := func(w, d string, base float64) PriceRow {
		r := PriceRow{WeightBand: w, DistanceBand: d}
		for _, v := range AllVehicleTypes() {
			r.Prices[v] = NewPrice(base + float64(v)*10)
		}
		return r
	}
	return NewPriceTable("fixture.xlsx", []PriceRow{
		row("0-10kg", "0-10km", 100),
		row("10-50kg", "0-10km", 200),
		row("50-100kg", "0-10km", 300),
	})
}

// TestVehicleTypeLabels tests the fixed column labels and their order
func TestVehicleTypeLabels(t *testing.T) {
	expected := []string{"CAR", "MID-SIZED", "PICKUP TRUCK", "CARGO VAN", "CARGO VAN WITH HIGH TOP", "16' BOX TRUCK", "26' BOX TRUCK"}
	all := AllVehicleTypes()
	require.Len(t, all, NumVehicleTypes)
	for i, v := range all {
		assert.Equal(t, expected[i], v.Label())
	}
}

func TestVehicleTypeDisplayName(t *testing.T) {
	tests := []struct {
		vehicle  VehicleType
		expected string
	}{
		{Car, "Car"},
		{MidSized, "Mid-Sized"},
		{CargoVanHighTop, "Cargo Van With High Top"},
		{BoxTruck16, "16' Box Truck"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.vehicle.DisplayName())
	}
}

func TestParseVehicleType(t *testing.T) {
	v, err := ParseVehicleType(" pickup truck ")
	require.NoError(t, err)
	assert.Equal(t, PickupTruck, v)

	_, err = ParseVehicleType("BICYCLE")
	assert.Error(t, err)
}

func TestNewPriceTableKeepsBands(t *testing.T) {
	table := NewPriceTable("x", []PriceRow{{WeightBand: BlankBand}})
	r, ok := table.Row(0)
	require.True(t, ok)
	assert.Equal(t, BlankBand, r.WeightBand)
	assert.Equal(t, "", r.DistanceBand)
	for _, v := range AllVehicleTypes() {
		assert.False(t, r.Price(v).Valid)
	}
}

func TestPriceTableRowsIsACopy(t *testing.T) {
	table := fixtureTable()
	rows := table.Rows()
	rows[0].WeightBand = "mutated"

	r, _ := table.Row(0)
	assert.Equal(t, "0-10kg", r.WeightBand)
}

func TestPriceTableBands(t *testing.T) {
	table := fixtureTable()
	assert.Equal(t, []string{"0-10kg", "10-50kg", "50-100kg"}, table.WeightBands())
	assert.Equal(t, []string{"0-10km"}, table.DistanceBands())
}

func TestFindWithoutFilterReturnsWholeTable(t *testing.T) {
	table := fixtureTable()
	got := Find(table, Filter{})
	assert.Equal(t, table.Rows(), got)
}

func TestFind(t *testing.T) {
	table := fixtureTable()

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"both bands", ByBands("10-50kg", "0-10km"), []string{"10-50kg"}},
		{"weight only", NewFilter("50-100kg", ""), []string{"50-100kg"}},
		{"distance only", NewFilter("", "0-10km"), []string{"0-10kg", "10-50kg", "50-100kg"}},
		{"unknown weight", ByBands("999kg", "0-10km"), nil},
		{"case sensitive", ByBands("10-50KG", "0-10km"), nil},
		{"sentinel is unfiltered", NewFilter("Select Estimated Weight", "Select Distance", "Select Estimated Weight", "Select Distance"), []string{"0-10kg", "10-50kg", "50-100kg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(table, tt.filter)
			require.NotNil(t, got)
			var weights []string
			for _, r := range got {
				weights = append(weights, r.WeightBand)
			}
			assert.Equal(t, tt.expected, weights)
		})
	}
}

func TestFindKeepsDuplicates(t *testing.T) {
	a := PriceRow{WeightBand: "0-10kg", DistanceBand: "0-10km"}
	b := a
	a.Prices[Car] = NewPrice(1)
	b.Prices[Car] = NewPrice(2)
	table := NewPriceTable("dup", []PriceRow{a, b})

	got := Find(table, ByBands("0-10kg", "0-10km"))
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].Price(Car).Value)
	assert.Equal(t, 2.0, got[1].Price(Car).Value)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    Price
		expected string
	}{
		{"thousands", NewPrice(1234.5), "R$ 1,234.50"},
		{"millions", NewPrice(1234567.891), "R$ 1,234,567.89"},
		{"small", NewPrice(7), "R$ 7.00"},
		{"absent", NoPrice, UnavailableText},
		{"nan", Price{Value: math.NaN(), Valid: true}, UnavailableText},
		{"inf", Price{Value: math.Inf(1), Valid: true}, UnavailableText},
		{"beyond int64", NewPrice(1e19), "R$ 10,000,000,000,000,000,000.00"},
		{"far beyond int64", NewPrice(1e20), "R$ 100,000,000,000,000,000,000.00"},
		{"rounds up", NewPrice(0.996), "R$ 1.00"},
		{"zero", NewPrice(0), "R$ 0.00"},
		{"negative", NewPrice(-1234.5), "R$ -1,234.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(tt.price))
		})
	}
}

func TestFormatPriceWithPrefix(t *testing.T) {
	assert.Equal(t, "US$ 10.00", FormatPriceWith(NewPrice(10), "US$"))
	assert.Equal(t, "10.00", FormatPriceWith(NewPrice(10), ""))
}

func TestNewPriceRejectsNonFinite(t *testing.T) {
	assert.False(t, NewPrice(math.NaN()).Valid)
	assert.False(t, NewPrice(math.Inf(-1)).Valid)
	assert.True(t, NewPrice(0).Valid)
}
