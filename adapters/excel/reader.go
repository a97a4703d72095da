package excel

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pricetable/adapters/coercer"
	"pricetable/domain/core"
	"pricetable/domain/pricing"
	"pricetable/internal"

	"github.com/xuri/excelize/v2"
)

// PriceTableReader loads the price table from an Excel workbook or a CSV export of it
type PriceTableReader struct {
	config   ExcelConfig
	fileType string // "xlsx" or "csv"
	coercer  *coercer.TypeCoercer
	logger   *internal.Logger
}

// NewPriceTableReader creates a reader for config.FilePath. The file type follows the
// extension; anything that is not .csv is opened as a workbook.
func NewPriceTableReader(config ExcelConfig, logger *internal.Logger) *PriceTableReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.SheetName == "" {
		config.SheetName = DefaultSheetName
	}
	if config.CSVDelimiter == 0 {
		config.CSVDelimiter = ','
	}
	fileType := "xlsx"
	if strings.EqualFold(filepath.Ext(config.FilePath), ".csv") {
		fileType = "csv"
	}
	return &PriceTableReader{
		config:   config,
		fileType: fileType,
		coercer:  coercer.NewTypeCoercer(config.CoercionConfig),
		logger:   logger.Named("PriceTableReader"),
	}
}

// Source returns the path the table is read from
func (r *PriceTableReader) Source() string {
	return r.config.FilePath
}

// Load reads and normalizes the price table. A missing file yields an error matching
// core.ErrSourceNotFound; a sheet that does not have the expected columns yields
// core.ErrShape; anything else that stops the read yields core.ErrLoad.
func (r *PriceTableReader) Load(ctx context.Context) (*pricing.PriceTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := r.config.FilePath
	r.logger.Info("Loading %s price table: %s", r.fileType, path)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.NewSourceNotFoundError(path)
		}
		return nil, core.NewLoadError(path, err)
	}

	startTime := time.Now()
	var (
		rows      [][]string
		titleRows = max(r.config.HeaderRows, 0)
		err       error
	)
	switch r.fileType {
	case "csv":
		// title lines are skipped while reading, before blank lines can collapse
		rows, err = r.readCSVRows(titleRows)
		titleRows = 0
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}
	r.logger.Debug("Read %d raw rows in %.2fms", len(rows), float64(time.Since(startTime).Nanoseconds())/1e6)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := r.normalize(rows, titleRows)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Price table loaded (%d rows) in %.2fms", table.Len(), float64(time.Since(startTime).Nanoseconds())/1e6)
	return table, nil
}

// readExcelRows reads the configured worksheet with raw cell values
func (r *PriceTableReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(r.config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q: %w", r.config.SheetName, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (sheets: %s)", r.config.SheetName, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(r.config.SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.config.SheetName, err)
	}
	return rows, nil
}

// readCSVRows reads a CSV export of the price sheet. The first skipLines physical lines
// are dropped before parsing, blank or not, so the title block lines up with the sheet.
func (r *PriceTableReader) readCSVRows(skipLines int) ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	for i := 0; i < skipLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to skip CSV title lines: %w", err)
		}
	}

	reader := csv.NewReader(br)
	reader.Comma = r.config.CSVDelimiter
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// normalize turns raw sheet rows into price rows: skip the title rows and the header row,
// drop columns that are empty in every data row, bind the first nine remaining columns to
// weight, distance and the seven vehicle prices.
func (r *PriceTableReader) normalize(rows [][]string, titleRows int) (*pricing.PriceTable, error) {
	skip := titleRows
	if r.config.HasHeaderRow {
		if skip < len(rows) {
			r.logger.Debug("Header row: %v", rows[skip])
		}
		skip++
	}
	var data [][]string
	if skip < len(rows) {
		data = rows[skip:]
	}

	columns := nonEmptyColumns(data)
	if len(columns) < PriceTableColumns {
		return nil, core.NewShapeError(len(columns), PriceTableColumns)
	}
	if len(columns) > PriceTableColumns {
		r.logger.Debug("Ignoring %d trailing columns", len(columns)-PriceTableColumns)
	}
	columns = columns[:PriceTableColumns]

	priceRows := make([]pricing.PriceRow, 0, len(data))
	unparsed := 0
	for _, raw := range data {
		row := pricing.PriceRow{
			WeightBand:   r.coercer.CoerceLabel(cellAt(raw, columns[0])),
			DistanceBand: r.coercer.CoerceLabel(cellAt(raw, columns[1])),
		}
		for _, v := range pricing.AllVehicleTypes() {
			cell := cellAt(raw, columns[2+int(v)])
			row.Prices[v] = r.coercer.CoercePrice(cell)
			if !row.Prices[v].Valid && strings.TrimSpace(cell) != "" {
				unparsed++
			}
		}
		priceRows = append(priceRows, row)
	}

	if unparsed > 0 {
		r.logger.Debug("%d price cells did not parse and were left unavailable", unparsed)
	}
	return pricing.NewPriceTable(r.config.FilePath, priceRows), nil
}

// nonEmptyColumns returns the indexes of columns holding at least one value, in order
func nonEmptyColumns(rows [][]string) []int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	columns := make([]int, 0, width)
	for j := 0; j < width; j++ {
		for _, row := range rows {
			if cellAt(row, j) != "" {
				columns = append(columns, j)
				break
			}
		}
	}
	return columns
}

func cellAt(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}
