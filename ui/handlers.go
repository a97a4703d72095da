package ui

import (
	"net/http"

	apperrors "pricetable/internal/errors"
	"pricetable/ui/middleware"
	"pricetable/ui/services"
	"pricetable/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

// handleIndex renders the wide price page
func (s *Server) handleIndex(c *gin.Context) {
	view := s.pages.BuildPage(c.Request.Context(), services.VariantWide, c.Query("weight"), c.Query("distance"))
	s.renderTemplate(c, http.StatusOK, fragments.IndexPage, view)
}

// handleCompact renders the compact price page
func (s *Server) handleCompact(c *gin.Context) {
	view := s.pages.BuildPage(c.Request.Context(), services.VariantCompact, c.Query("weight"), c.Query("distance"))
	s.renderTemplate(c, http.StatusOK, fragments.CompactPage, view)
}

// handleCardsFragment renders only the card grid for the current selection
func (s *Server) handleCardsFragment(c *gin.Context) {
	view, err := s.pages.BuildCards(c.Request.Context(), c.Query("weight"), c.Query("distance"))
	if err != nil {
		s.renderTemplate(c, apperrors.StatusFor(err), fragments.Banners, &services.PageView{
			Banners: []services.Banner{{Level: "error", Text: err.Error()}},
		})
		return
	}
	s.renderTemplate(c, http.StatusOK, fragments.CardsGrid, view)
}

// handlePrices returns the quote for the current selection as JSON
func (s *Server) handlePrices(c *gin.Context) {
	quote, err := s.lookup.Quote(c.Request.Context(), services.ParseFilter(c.Query("weight"), c.Query("distance")))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// handleBands returns the selector values as JSON
func (s *Server) handleBands(c *gin.Context) {
	table, err := s.tables.Table(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"weights":   table.WeightBands(),
		"distances": table.DistanceBands(),
	})
}

// handleSummary returns the per-vehicle price ranges as JSON
func (s *Server) handleSummary(c *gin.Context) {
	summary, err := s.lookup.Summary(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": summary})
}

// handleHealth reports whether a price table is available
func (s *Server) handleHealth(c *gin.Context) {
	table, err := s.tables.Table(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"source": s.tables.Source(),
			"code":   apperrors.GetCode(err),
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"source":    table.Source(),
		"rows":      table.Len(),
		"loaded_at": table.LoadedAt(),
	})
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{
		"error":      err.Error(),
		"code":       apperrors.GetCode(err),
		"request_id": middleware.GetRequestID(c),
	})
}
