package ui

import (
	"net/http"
	"testing"

	"pricetable/domain/core"
	"pricetable/ui/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppServesPages(t *testing.T) {
	a, err := NewApp(Config{}, testDeps(t, &stubTables{table: fixtureTable()}))
	require.NoError(t, err)
	h := a.Handler()

	rec := get(h, "/compact?"+query("0-10kg", "0-10km"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "R$ 1,134.50")
	assert.Contains(t, rec.Body.String(), services.AllPlaceholder)

	rec = get(h, "/api/fragments/cards?"+query("10-50kg", "10-50km"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), services.NoResultsText)

	rec = get(h, "/static/css/compact.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAppPricesError(t *testing.T) {
	a, err := NewApp(Config{}, testDeps(t, &stubTables{err: core.NewShapeError(3, 9)}))
	require.NoError(t, err)

	rec := get(a.Handler(), "/api/prices")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SHAPE_ERROR")

	assert.Equal(t, http.StatusServiceUnavailable, get(a.Handler(), "/healthz").Code)
}

func TestNewAppRequiresDependencies(t *testing.T) {
	_, err := NewApp(Config{}, Dependencies{})
	assert.Error(t, err)
}
