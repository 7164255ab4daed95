package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "orderpulse/internal/errors"
	"orderpulse/internal/exporter"
)

// ExportHandler streams the summary tables as CSV or Excel downloads
type ExportHandler struct {
	service      DashboardServiceInterface
	excel        *exporter.ExcelWriter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler
func NewExportHandler(service DashboardServiceInterface, excel *exporter.ExcelWriter, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		excel:        excel,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/csv/{table}", h.ExportCSV)
	r.Get("/xlsx", h.ExportExcel)

	return r
}

// ExportCSV handles GET /api/export/csv/{table}
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	tableName := chi.URLParam(r, "table")

	bundle, err := h.service.GetBundle(r.Context(), rangeRequest(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	table, err := exporter.BuildTable(bundle, tableName)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound,
			"TABLE_NOT_FOUND",
			err.Error(),
		))
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", table.Name, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	// UTF-8 BOM so spreadsheet tools pick the right encoding
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(table.Headers); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export write failed",
			slog.String("error", err.Error()))
		return
	}
	for _, record := range table.Records {
		if err := writer.Write(record); err != nil {
			h.logger.ErrorContext(r.Context(), "csv export write failed",
				slog.String("error", err.Error()))
			return
		}
	}
	writer.Flush()

	h.logger.InfoContext(r.Context(), "csv export served",
		slog.String("table", table.Name),
		slog.Int("record_count", len(table.Records)))
}

// ExportExcel handles GET /api/export/xlsx
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.service.GetBundle(r.Context(), rangeRequest(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("orderpulse_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.excel.WriteWorkbook(bundle, w); err != nil {
		h.logger.ErrorContext(r.Context(), "excel export failed",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(r.Context(), "excel export served",
		slog.String("filename", filename))
}
