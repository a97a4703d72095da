package excel

import (
	"pricetable/adapters/coercer"
)

const (
	// DefaultSheetName is the worksheet holding the price tiers.
	DefaultSheetName = "Table_Price"
	// DefaultHeaderRows is the number of title rows above the column header row.
	DefaultHeaderRows = 5
	// PriceTableColumns is the column count of a normalized sheet: two bands plus one
	// price column per vehicle type.
	PriceTableColumns = 9
)

// ExcelConfig holds configuration for the price table source
type ExcelConfig struct {
	FilePath       string                 `json:"file_path"`
	SheetName      string                 `json:"sheet_name"`
	HeaderRows     int                    `json:"header_rows"`     // rows skipped before the header row
	HasHeaderRow   bool                   `json:"has_header_row"`  // first row after the skip names the columns
	CSVDelimiter   rune                   `json:"csv_delimiter"`
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultExcelConfig returns the layout of the published price sheets
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		SheetName:      DefaultSheetName,
		HeaderRows:     DefaultHeaderRows,
		HasHeaderRow:   true,
		CSVDelimiter:   ',',
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
