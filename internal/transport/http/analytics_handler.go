package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sjrpulse/internal/errors"
	"sjrpulse/internal/middleware"
	"sjrpulse/internal/services"
)

// Query parameter bindings for the analytics endpoints. The year and
// areatag rules are the custom validators registered by ValidationMiddleware.
type areasQuery struct {
	Year int `json:"year" validate:"required,year"`
}

type rankingsQuery struct {
	Year  int  `json:"year" validate:"required,year"`
	Limit *int `json:"limit" validate:"omitempty,min=1"`
}

type quartilesQuery struct {
	Year int    `json:"year" validate:"required,year"`
	Area string `json:"area" validate:"required,areatag"`
}

// AnalyticsHandler handles analytics HTTP requests with RFC 7807 compliance
type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *middleware.ValidationMiddleware
	maxTopN      int
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service AnalyticsServiceInterface, maxTopN int, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalyticsHandler {
	if maxTopN <= 0 {
		maxTopN = 100
	}
	return &AnalyticsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
		validate:     middleware.NewValidationMiddleware(logger, errorHandler),
		maxTopN:      maxTopN,
	}
}

// Routes returns the analytics routes
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/years", h.GetYears)
	r.Get("/areas", h.GetAreas)
	r.Get("/rankings", h.GetRankings)
	r.Get("/quartiles", h.GetQuartiles)
	r.Get("/quartiles/labels", h.GetQuartileLabels)

	return r
}

// bindQuery binds and validates the query string into dst, answering the
// request itself on failure.
func (h *AnalyticsHandler) bindQuery(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := h.validate.ValidateQuery(r, dst); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return false
	}
	return true
}

// GetYears handles GET /api/analytics/years
func (h *AnalyticsHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.service.Years(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   years,
		"count":  len(years),
	})
}

// GetAreas handles GET /api/analytics/areas?year=YYYY
func (h *AnalyticsHandler) GetAreas(w http.ResponseWriter, r *http.Request) {
	var q areasQuery
	if !h.bindQuery(w, r, &q) {
		return
	}

	areas, err := h.service.AreasForYear(r.Context(), q.Year)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   areas,
		"count":  len(areas),
	})
}

// GetRankings handles GET /api/analytics/rankings?year=YYYY&limit=N
func (h *AnalyticsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	var q rankingsQuery
	if !h.bindQuery(w, r, &q) {
		return
	}

	// an omitted limit stays zero and lets the service apply its default
	limit := 0
	if q.Limit != nil {
		limit = *q.Limit
	}
	if limit > h.maxTopN {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit",
			fmt.Sprintf("limit must be at most %d", h.maxTopN)))
		return
	}

	h.logger.InfoContext(r.Context(), "computing area ranking",
		slog.Int("year", q.Year),
		slog.Int("limit", limit))

	ranking, err := h.service.RankAreas(r.Context(), q.Year, limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   ranking,
		"count":  len(ranking.Areas),
	})
}

// GetQuartiles handles GET /api/analytics/quartiles?year=YYYY&area=NAME
func (h *AnalyticsHandler) GetQuartiles(w http.ResponseWriter, r *http.Request) {
	var q quartilesQuery
	if !h.bindQuery(w, r, &q) {
		return
	}

	grouping, err := h.service.GroupQuartiles(r.Context(), q.Year, q.Area)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   grouping,
		"count":  len(grouping.Groups),
	})
}

// GetQuartileLabels handles GET /api/analytics/quartiles/labels
func (h *AnalyticsHandler) GetQuartileLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := h.service.QuartileLabels(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   labels,
		"count":  len(labels),
	})
}

// handleServiceError maps service sentinels to API errors
func (h *AnalyticsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "analytics request failed",
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path))

	switch {
	case errors.Is(err, services.ErrYearNotAvailable):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound,
			"YEAR_NOT_AVAILABLE",
			"The requested year is not present in the dataset",
		))
	case errors.Is(err, services.ErrDatasetNotLoaded):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusServiceUnavailable,
			"DATASET_NOT_LOADED",
			"The dataset has not been loaded yet",
		))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
