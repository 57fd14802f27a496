package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/caloriehawk/backend/internal/domain"
	"github.com/caloriehawk/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

const defaultGrams = 154.0

// Handler holds dependencies for HTTP handlers
type Handler struct {
	nutrition *usecase.NutritionService
	macros    *usecase.MacroService
}

// NewHandler creates a new HTTP handler
func NewHandler(nutrition *usecase.NutritionService, macros *usecase.MacroService) *Handler {
	return &Handler{nutrition: nutrition, macros: macros}
}

// Root lists the service endpoints
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "caloriehawk-backend",
		"version": "1.0.0",
		"endpoints": gin.H{
			"nutrition": "/nutrition/{food_name}",
			"macros":    "/macros",
			"health":    "/health",
		},
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "caloriehawk-backend",
		"version": "1.0.0",
	})
}

// GetNutrition handles the simple lookup: multi-source fallback chain,
// always a 200 with a source tag unless the food name is blank.
func (h *Handler) GetNutrition(c *gin.Context) {
	result, err := h.nutrition.Resolve(c.Request.Context(), c.Param("food"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "food name cannot be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMacros handles the detailed lookup against FoodData Central.
func (h *Handler) GetMacros(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	grams := defaultGrams
	if raw := c.Query("grams"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "grams must be a positive number"})
			return
		}
		grams = parsed
	}

	includeSurvey := false
	if raw := c.Query("include_survey"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "include_survey must be a boolean"})
			return
		}
		includeSurvey = parsed
	}

	report, err := h.macros.Report(c.Request.Context(), query, grams, includeSurvey)
	if err != nil {
		status, msg := macroErrorStatus(err, query)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, report)
}

// macroErrorStatus maps detailed-flow errors onto HTTP statuses: missing
// key is a server misconfiguration, no candidates is a not-found, a
// provider rejection mirrors the provider's status, and an exhausted
// retry budget is an upstream outage.
func macroErrorStatus(err error, query string) (int, string) {
	var rejected *domain.ProviderStatusError

	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		return http.StatusInternalServerError, "FDC API key not set"
	case errors.Is(err, domain.ErrNoCandidates):
		return http.StatusNotFound, "no FDC foods for '" + query + "'"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request parameters"
	case errors.As(err, &rejected):
		return rejected.StatusCode, err.Error()
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusBadGateway, err.Error()
	}
}
