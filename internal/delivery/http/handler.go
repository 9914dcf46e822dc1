package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/datahunter/backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Resolver resolves one product query into a complete ProductRecord. Both
// pipeline variants satisfy it.
type Resolver interface {
	ProcessProduct(ctx context.Context, query domain.ProductQuery) domain.ProductRecord
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	hunt     Resolver
	grounded Resolver
	logger   zerolog.Logger
}

// NewHandler creates a new HTTP handler over the two pipeline variants
func NewHandler(hunt, grounded Resolver, logger zerolog.Logger) *Handler {
	return &Handler{
		hunt:     hunt,
		grounded: grounded,
		logger:   logger.With().Str("component", "http").Logger(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "datahunter-backend",
		"version": "1.0.0",
	})
}

// SearchProduct handles GET /api/v1/products/search?gtin=...&market=...
// The optional mode=grounded parameter selects the search-grounded pipeline
// instead of the evidence hunt.
func (h *Handler) SearchProduct(c *gin.Context) {
	gtin := strings.TrimSpace(c.Query("gtin"))
	market := strings.TrimSpace(c.Query("market"))

	if gtin == "" || market == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  domain.ErrInvalidRequest.Error(),
			"detail": "gtin and market query parameters are required",
		})
		return
	}

	query := domain.ProductQuery{GTIN: gtin, Market: market}

	resolver := h.hunt
	if c.Query("mode") == "grounded" {
		resolver = h.grounded
	}
	if resolver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "pipeline not configured",
		})
		return
	}

	h.logger.Info().
		Str("gtin", gtin).
		Str("market", market).
		Str("mode", c.DefaultQuery("mode", "hunt")).
		Msg("product lookup started")

	record := resolver.ProcessProduct(c.Request.Context(), query)

	h.logger.Info().
		Str("gtin", gtin).
		Bool("found", record.Found).
		Str("status", record.Status).
		Msg("product lookup finished")

	c.JSON(http.StatusOK, record)
}
