package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "mediapulse/internal/errors"
	"mediapulse/internal/exporter"
	"mediapulse/internal/mediaintel"
	"mediapulse/internal/metrics"
	"mediapulse/internal/services"
	ws "mediapulse/internal/websocket"
)

// DashboardHandler handles dashboard HTTP requests.
type DashboardHandler struct {
	service      DashboardServiceInterface
	hub          *ws.Hub
	metrics      *metrics.Metrics
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
	maxUpload    int64

	// uploadLimiter optionally wraps the upload route; uploads trigger
	// a full re-clean, so they get their own budget.
	uploadLimiter func(http.Handler) http.Handler
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(
	service DashboardServiceInterface,
	hub *ws.Hub,
	m *metrics.Metrics,
	logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler,
	maxUpload int64,
	uploadLimiter func(http.Handler) http.Handler,
) *DashboardHandler {
	return &DashboardHandler{
		service:       service,
		hub:           hub,
		metrics:       m,
		logger:        logger.With(slog.String("component", "dashboard_handler")),
		errorHandler:  errorHandler,
		validate:      validator.New(),
		maxUpload:     maxUpload,
		uploadLimiter: uploadLimiter,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	if h.uploadLimiter != nil {
		r.With(h.uploadLimiter).Post("/upload", h.Upload)
	} else {
		r.Post("/upload", h.Upload)
	}
	r.Get("/charts", h.GetCharts)
	r.Get("/filters", h.GetFilterOptions)
	r.Get("/insights", h.GetInsights)
	r.Delete("/dataset", h.DeleteDataset)

	r.Route("/export", func(r chi.Router) {
		r.Get("/csv", h.ExportCSV)
		r.Get("/xlsx", h.ExportXLSX)
	})

	return r
}

// chartQuery is the bound and validated form of the chart/export query
// string. Date fields use the day-granularity wire format.
type chartQuery struct {
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
	Platform  string `validate:"omitempty,max=100"`
	Sentiment string `validate:"omitempty,max=100"`
	MediaType string `validate:"omitempty,max=100"`
	Location  string `validate:"omitempty,max=100"`
}

// bindCriteria parses and validates filter criteria from the query
// string. An inverted date range is deliberately not rejected; the
// filter engine yields an empty result for it.
func (h *DashboardHandler) bindCriteria(r *http.Request) (mediaintel.Criteria, error) {
	q := r.URL.Query()
	query := chartQuery{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Platform:  q.Get("platform"),
		Sentiment: q.Get("sentiment"),
		MediaType: q.Get("media_type"),
		Location:  q.Get("location"),
	}
	if err := h.validate.Struct(query); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0]
			return mediaintel.Criteria{}, apierrors.ErrValidation(
				field.Field(),
				fmt.Sprintf("failed %s validation", field.Tag()),
			)
		}
		return mediaintel.Criteria{}, apierrors.InvalidRequestWithError(err)
	}

	criteria := mediaintel.Criteria{
		Platform:  query.Platform,
		Sentiment: query.Sentiment,
		MediaType: query.MediaType,
		Location:  query.Location,
	}
	if query.StartDate != "" {
		t, _ := time.Parse("2006-01-02", query.StartDate)
		criteria.DateStart = &t
	}
	if query.EndDate != "" {
		t, _ := time.Parse("2006-01-02", query.EndDate)
		criteria.DateEnd = &t
	}
	return criteria, nil
}

// Upload handles POST /api/dashboard/upload. Accepts either a
// multipart form with a "file" field or the raw file as request body.
func (h *DashboardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename, data, err := h.readUpload(w, r)
	if err != nil {
		h.metrics.UploadsRejected.Inc()
		h.errorHandler.HandleError(w, r, err)
		return
	}

	ds, err := h.service.Upload(ctx, filename, data)
	if err != nil {
		h.metrics.UploadsRejected.Inc()
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	h.metrics.UploadsTotal.Inc()
	h.metrics.UploadRows.Add(float64(ds.RawRows))
	h.hub.Broadcast(ws.TypeDataUpdate, map[string]interface{}{
		"dataset_id": ds.ID,
		"records":    ds.Len(),
	})

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   ds,
		"records": map[string]int{
			"total":   ds.RawRows,
			"kept":    ds.Len(),
			"dropped": ds.DroppedRows,
		},
	})
}

func (h *DashboardHandler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, apierrors.InvalidRequestWithError(err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, h.uploadReadError(err)
		}
		return header.Filename, data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, h.uploadReadError(err)
	}
	// Raw bodies carry no filename; the format query parameter picks
	// the reader, defaulting to CSV.
	name := "upload.csv"
	if format := r.URL.Query().Get("format"); format == "xlsx" {
		name = "upload.xlsx"
	}
	return name, data, nil
}

func (h *DashboardHandler) uploadReadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apierrors.ErrPayloadTooLarge
	}
	return apierrors.InvalidRequestWithError(err)
}

// GetCharts handles GET /api/dashboard/charts.
func (h *DashboardHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.bindCriteria(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	charts, err := h.service.Charts(r.Context(), criteria)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   charts,
	})
}

// GetFilterOptions handles GET /api/dashboard/filters.
func (h *DashboardHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   opts,
	})
}

// GetInsights handles GET /api/dashboard/insights.
func (h *DashboardHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	insight, err := h.service.Insights(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   insight,
	})
}

// DeleteDataset handles DELETE /api/dashboard/dataset.
func (h *DashboardHandler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.hub.Broadcast(ws.TypeDataCleared, nil)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
	})
}

// ExportCSV handles GET /api/dashboard/export/csv: the filtered
// records as a CSV download.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.bindCriteria(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	records, err := h.service.FilteredRecords(r.Context(), criteria)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="media_intelligence.csv"`)
	if err := exporter.WriteRecordsCSV(w, records); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("error", err.Error()))
	}
}

// ExportXLSX handles GET /api/dashboard/export/xlsx: the filtered
// records plus all five series as an Excel workbook.
func (h *DashboardHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.bindCriteria(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	charts, err := h.service.Charts(r.Context(), criteria)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}
	records, err := h.service.FilteredRecords(r.Context(), criteria)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="media_intelligence.xlsx"`)
	err = exporter.WriteWorkbook(w, exporter.DashboardWorkbook{
		Records:             records,
		SentimentCounts:     charts.SentimentCounts,
		PlatformEngagements: charts.PlatformEngagements,
		DailyEngagements:    charts.DailyEngagements,
		MediaTypeCounts:     charts.MediaTypeCounts,
		TopLocations:        charts.TopLocations,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "xlsx export failed",
			slog.String("error", err.Error()))
	}
}

// mapServiceError converts service sentinel errors to API errors.
func (h *DashboardHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNoDataset):
		return apierrors.ErrNoDataset
	case errors.Is(err, services.ErrEmptyUpload):
		return apierrors.NewWithDetails(http.StatusBadRequest, "EMPTY_UPLOAD", "Uploaded file is empty", nil)
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.NewWithDetails(http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "Only CSV and XLSX uploads are supported", err.Error())
	case errors.Is(err, services.ErrMalformedUpload):
		return apierrors.NewWithDetails(http.StatusBadRequest, "MALFORMED_UPLOAD", "Uploaded file is not a readable table", err.Error())
	default:
		return err
	}
}
