package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pricescope/backend/internal/domain"
)

// SearchService is the slice of the usecase layer the handlers need.
type SearchService interface {
	Search(ctx context.Context, request *domain.SearchRequest) ([]domain.Offer, error)
	SupportedCountries() []string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(search SearchService) *Handler {
	return &Handler{search: search}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricescope-backend",
		"version": "1.0.0",
	})
}

// Search handles product search requests across e-commerce sites.
func (h *Handler) Search(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "search service not configured",
		})
		return
	}

	var request domain.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "country and query are required",
		})
		return
	}

	offers, err := h.search.Search(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	// An empty result set serializes as [] rather than null.
	if offers == nil {
		offers = []domain.Offer{}
	}
	c.JSON(http.StatusOK, offers)
}

// SupportedCountries lists the country codes with explicit site routing.
func (h *Handler) SupportedCountries(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "search service not configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"countries": h.search.SupportedCountries(),
	})
}
