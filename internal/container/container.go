package container

import (
	"context"
	"fmt"

	"pricetable/adapters/excel"
	"pricetable/app"
	"pricetable/internal"
	"pricetable/internal/assets"
	"pricetable/internal/config"
	"pricetable/ui"
	"pricetable/ui/services"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Data access
	Reader *excel.PriceTableReader
	Assets *assets.Store

	// Application services
	Tables *app.PriceTableService
	Lookup *app.PriceLookupService

	// Presentation services
	Notes *services.NotesService
	Pages *services.PageService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.DefaultLogger
	if level, ok := internal.ParseLogLevel(cfg.LogLevel); ok {
		logger = internal.NewLogger(level)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}
	c.initServices()
	return c, nil
}

// ExcelConfig maps the data settings onto the reader configuration
func ExcelConfig(data config.DataConfig) excel.ExcelConfig {
	cfg := excel.DefaultExcelConfig()
	cfg.FilePath = data.PriceTableFile
	if data.SheetName != "" {
		cfg.SheetName = data.SheetName
	}
	if data.HeaderRows >= 0 {
		cfg.HeaderRows = data.HeaderRows
	}
	cfg.CSVDelimiter = data.CSVDelimiterRune()
	return cfg
}

func (c *Container) initServices() {
	c.Reader = excel.NewPriceTableReader(ExcelConfig(c.Config.Data), c.Logger)
	c.Tables = app.NewPriceTableService(c.Reader, c.Logger)
	c.Lookup = app.NewPriceLookupService(c.Tables, c.Config.Page.CurrencyPrefix)

	c.Assets = assets.NewStore(c.Config.Data.AssetsDir, c.Config.Page.VehicleImages, c.Logger)
	if c.Config.Page.NotesFile != "" {
		c.Notes = services.NewNotesService(c.Config.Page.NotesFile, c.Logger)
	}
	c.Pages = services.NewPageService(c.Tables, c.Lookup, c.Assets, c.Notes, c.Config.Page, c.Logger)
}

// Warm loads the price table ahead of the first request
func (c *Container) Warm(ctx context.Context) {
	c.Tables.Warm(ctx)
}

// UIDependencies returns the services the web front ends are built on
func (c *Container) UIDependencies() ui.Dependencies {
	return ui.Dependencies{
		Tables: c.Tables,
		Lookup: c.Lookup,
		Pages:  c.Pages,
	}
}
