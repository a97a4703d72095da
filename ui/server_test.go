package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"pricetable/app"
	"pricetable/domain/core"
	"pricetable/domain/pricing"
	"pricetable/internal"
	"pricetable/internal/assets"
	"pricetable/internal/config"
	"pricetable/ui/middleware"
	"pricetable/ui/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTables serves a fixed table or a fixed load error
type stubTables struct {
	table *pricing.PriceTable
	err   error
}

func (s *stubTables) Table(ctx context.Context) (*pricing.PriceTable, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

func (s *stubTables) LastError() error { return s.err }

func (s *stubTables) Source() string { return "data/Price Table_FCN7_V6.xlsx" }

func fixtureTable() *pricing.PriceTable {
	row := func(w, d string, base float64) pricing.PriceRow {
		r := pricing.PriceRow{WeightBand: w, DistanceBand: d}
		for _, v := range pricing.AllVehicleTypes() {
			r.Prices[v] = pricing.NewPrice(base + float64(v)*100)
		}
		return r
	}
	rows := []pricing.PriceRow{
		row("0-10kg", "0-10km", 1134.5),
		row("0-10kg", "10-50km", 2000),
		row("10-50kg", "0-10km", 3000),
	}
	rows[2].Prices[pricing.BoxTruck26] = pricing.NoPrice
	return pricing.NewPriceTable("prices.xlsx", rows)
}

func testDeps(t *testing.T, tables *stubTables) Dependencies {
	t.Helper()
	logger := internal.NewLogger(internal.LogLevelError)
	lookup := app.NewPriceLookupService(tables, pricing.DefaultCurrencyPrefix)
	page := config.PageConfig{
		Title:          "FCN7 Simulator",
		FooterText:     "FCN7 - All rights reserved",
		CurrencyPrefix: pricing.DefaultCurrencyPrefix,
	}
	store := assets.NewStore(t.TempDir(), nil, logger)
	pages := services.NewPageService(tables, lookup, store, nil, page, logger)
	return Dependencies{Tables: tables, Lookup: lookup, Pages: pages}
}

func newTestServer(t *testing.T, tables *stubTables) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := NewServer(nil)
	require.NoError(t, server.Initialize(testDeps(t, tables)))
	return server.Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func query(weight, distance string) string {
	v := url.Values{}
	v.Set("weight", weight)
	v.Set("distance", distance)
	return v.Encode()
}

func TestInitializeRequiresDependencies(t *testing.T) {
	server := NewServer(nil)
	assert.Error(t, server.Initialize(Dependencies{}))
}

func TestIndexUnfiltered(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>FCN7 Simulator</title>")
	assert.Contains(t, body, "Select Estimated Weight")
	assert.Contains(t, body, "Select Distance")
	assert.Contains(t, body, app.SelectFiltersText)
	assert.Contains(t, body, "Imagem1.png")
	assert.Contains(t, body, "FCN7 - All rights reserved")
	assert.NotContains(t, body, services.NoResultsText)
}

func TestIndexFiltered(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/?"+query("0-10kg", "0-10km"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "R$ 1,134.50")
	assert.Contains(t, rec.Body.String(), `<option value="0-10kg" selected>`)
}

func TestIndexNoResults(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/?"+query("10-50kg", "10-50km"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), services.NoResultsText)
}

func TestCompactUsesTodos(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/compact?"+query(services.AllPlaceholder, "0-10km"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, services.AllPlaceholder)
	assert.Contains(t, body, "R$ 1,134.50")
}

func TestIndexMissingTable(t *testing.T) {
	h := newTestServer(t, &stubTables{err: core.NewSourceNotFoundError("data/Price Table_FCN7_V6.xlsx")})

	rec := get(h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ERROR: File &#39;Price Table_FCN7_V6.xlsx&#39; not found.")
	assert.NotContains(t, body, "Select Estimated Weight")
}

func TestCardsFragment(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/api/fragments/cards?"+query("10-50kg", "0-10km"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "R$ 3,000.00")
	assert.Contains(t, body, pricing.UnavailableText)
	assert.NotContains(t, body, "<html")
}

func TestCardsFragmentLoadError(t *testing.T) {
	h := newTestServer(t, &stubTables{err: core.NewShapeError(4, 9)})

	rec := get(h, "/api/fragments/cards")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "banner-error")
}

func TestPricesJSON(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/api/prices?"+query("0-10kg", "10-50km"))
	require.Equal(t, http.StatusOK, rec.Code)

	var quote app.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.True(t, quote.Filtered)
	assert.Equal(t, 1, quote.Matches)
	require.Len(t, quote.Cards, pricing.NumVehicleTypes)
	assert.Equal(t, "R$ 2,000.00", quote.Cards[0].Text)
	assert.Equal(t, "CAR", quote.Cards[0].Label)
}

func TestPricesJSONLoadError(t *testing.T) {
	h := newTestServer(t, &stubTables{err: core.NewSourceNotFoundError("prices.xlsx")})

	rec := get(h, "/api/prices")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.NotEmpty(t, body["request_id"])
}

func TestBandsAndSummary(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/api/bands")
	require.Equal(t, http.StatusOK, rec.Code)
	var bands map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bands))
	assert.Equal(t, []string{"0-10kg", "10-50kg"}, bands["weights"])
	assert.Equal(t, []string{"0-10km", "10-50km"}, bands["distances"])

	rec = get(h, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"vehicle":"CAR"`)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})
	assert.Equal(t, http.StatusOK, get(h, "/healthz").Code)

	h = newTestServer(t, &stubTables{err: core.NewShapeError(4, 9)})
	rec := get(h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SHAPE_ERROR")
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/healthz")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.RequestIDHeader, "6f1c2a8e-3c1b-4f0e-9a43-2d9b1f0c7e55")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "6f1c2a8e-3c1b-4f0e-9a43-2d9b1f0c7e55", rec.Header().Get(middleware.RequestIDHeader))
}

func TestStaticAssets(t *testing.T) {
	h := newTestServer(t, &stubTables{table: fixtureTable()})

	rec := get(h, "/static/js/prices.js")
	assert.Equal(t, http.StatusOK, rec.Code)
}
