package pricing

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// DefaultCurrencyPrefix is prepended to every formatted price.
	DefaultCurrencyPrefix = "R$"
	// UnavailableText is shown when a vehicle has no price for the selected tier.
	UnavailableText = "Unavailable"
)

// FormatPrice renders p as "R$ 1,234.50", or UnavailableText when p is absent.
func FormatPrice(p Price) string {
	return FormatPriceWith(p, DefaultCurrencyPrefix)
}

// FormatPriceWith is FormatPrice with a custom currency prefix. It never fails.
func FormatPriceWith(p Price, prefix string) string {
	if !p.Valid || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return UnavailableText
	}
	amount := formatAmount(p.Value)
	if prefix == "" {
		return amount
	}
	return prefix + " " + amount
}

// FormatRowPrice formats row r's price for vehicle v.
func FormatRowPrice(r PriceRow, v VehicleType) string {
	return FormatPrice(r.Price(v))
}

// formatAmount renders v with two decimals and comma-grouped thousands. The integer part
// goes through big.Int so amounts past the int64 range keep their digits.
func formatAmount(v float64) string {
	fixed := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(fixed, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return fixed
	}
	grouped := humanize.BigComma(n)
	if n.Sign() == 0 && strings.HasPrefix(intPart, "-") && frac != "00" {
		grouped = "-" + grouped
	}
	return grouped + "." + frac
}
