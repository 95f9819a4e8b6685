package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sjrpulse/internal/dataprocessing"
	apierrors "sjrpulse/internal/errors"
	"sjrpulse/internal/services"
)

// DatasetHandler handles dataset lifecycle HTTP requests
type DatasetHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/reload", h.Reload)
	r.Get("/stats", h.GetStats)

	return r
}

// Reload handles POST /api/dataset/reload
func (h *DatasetHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "dataset reload requested",
		slog.String("remote_addr", r.RemoteAddr))

	if err := h.service.Reload(r.Context()); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

// GetStats handles GET /api/dataset/stats
func (h *DatasetHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

// handleServiceError maps dataset errors to API errors. Load failures with
// typed file errors pass through so the central handler can enrich them.
func (h *DatasetHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "dataset request failed",
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path))

	var missingErr *dataprocessing.MissingFileError
	var parseErr *dataprocessing.ParseError
	switch {
	case errors.As(err, &missingErr), errors.As(err, &parseErr):
		h.errorHandler.HandleError(w, r, err)
	case errors.Is(err, services.ErrDatasetNotLoaded):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusServiceUnavailable,
			"DATASET_NOT_LOADED",
			"The dataset has not been loaded yet",
		))
	case errors.Is(err, services.ErrNoFilesFound):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound,
			"NO_EXPORT_FILES",
			"No export files found in the data directory",
		))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
