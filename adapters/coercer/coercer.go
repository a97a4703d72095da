package coercer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"pricetable/domain/core"
	"pricetable/domain/pricing"
)

// TypeCoercer turns raw spreadsheet cell text into band labels and prices
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NullText     string `json:"null_text"`     // label given to blank band cells
	DecimalComma bool   `json:"decimal_comma"` // accept "," as the decimal separator
}

// DefaultCoercionConfig returns the rules the price sheets are written in
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NullText:     pricing.BlankBand,
		DecimalComma: true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// CoerceLabel converts a band cell to its trimmed text. Only an empty cell becomes
// NullText; a cell holding nothing but spaces trims to "".
func (c *TypeCoercer) CoerceLabel(rawValue interface{}) string {
	s := c.toString(rawValue)
	if s == "" {
		return c.config.NullText
	}
	return strings.TrimSpace(s)
}

// CoercePrice converts a price cell. Unparseable cells yield an absent price, never an error.
func (c *TypeCoercer) CoercePrice(rawValue interface{}) pricing.Price {
	val, err := c.ParseDecimal(c.toString(rawValue))
	if err != nil {
		return pricing.NoPrice
	}
	return pricing.NewPrice(val)
}

// ParseDecimal parses a decimal written with either "." or "," as the decimal mark.
// "1.234,56" and "1,234.56" both read as 1234.56; a lone comma is a decimal comma.
func (c *TypeCoercer) ParseDecimal(strVal string) (float64, error) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, core.NewCellParseError(strVal)
	}

	if c.config.DecimalComma {
		lastComma := strings.LastIndex(cleanVal, ",")
		lastPeriod := strings.LastIndex(cleanVal, ".")
		switch {
		case lastComma >= 0 && lastPeriod >= 0 && lastComma > lastPeriod:
			// 1.234,56: periods group thousands
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		case lastComma >= 0 && lastPeriod >= 0:
			// 1,234.56: commas group thousands
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		case lastComma >= 0:
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		}
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, core.NewCellParseError(strVal)
	}
	return val, nil
}

// toString converts interface{} to string safely
func (c *TypeCoercer) toString(val interface{}) string {
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return v
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
