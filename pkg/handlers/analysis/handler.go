package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/render"
	"github.com/de-tools/sales-atlas/pkg/services/cache"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/de-tools/sales-atlas/pkg/services/ledger"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/services/upload"
	"github.com/de-tools/sales-atlas/pkg/workbook"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	maxUploadBytes = 32 << 20
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Uploader interface {
	Upload(ctx context.Context, file upload.File) (*domain.AnalysisResult, error)
}

type Handler struct {
	cache     cache.ResultCache
	uploader  Uploader
	currency  string
	charts    render.Config
	maxUpload int64
}

func NewHandler(c cache.ResultCache, u Uploader, currency string, chartCfg render.Config) *Handler {
	return &Handler{
		cache:     c,
		uploader:  u,
		currency:  currency,
		charts:    chartCfg,
		maxUpload: maxUploadBytes,
	}
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	result, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, adapters.MapAnalysisResultDomainToApi(result))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, adapters.MapSummaryDomainToApi(h.currency, report.SummaryRows(result)))
}

// GetProducts returns the product sales table, or the low sales table when
// low=true is passed.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	result, ok := h.load(w, r)
	if !ok {
		return
	}
	payload := adapters.MapAnalysisResultDomainToApi(result)
	table := payload.ProductSales
	if r.URL.Query().Get("low") == "true" {
		table = payload.LowSalesProducts
	}
	writeJSON(r.Context(), w, http.StatusOK, table)
}

func (h *Handler) ListCharts(w http.ResponseWriter, r *http.Request) {
	result, ok := h.load(w, r)
	if !ok {
		return
	}
	all := charts.All(result)
	response := make([]api.Series, 0, len(all))
	for _, s := range all {
		response = append(response, adapters.MapSeriesToApi(s))
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

// GetChart returns one series as JSON. A .png or .svg suffix on the name
// renders the series as an image instead.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "name")

	var format render.Format
	for _, f := range []render.Format{render.FormatPNG, render.FormatSVG} {
		if trimmed, found := strings.CutSuffix(name, f.Extension()); found {
			name, format = trimmed, f
			break
		}
	}

	result, ok := h.load(w, r)
	if !ok {
		return
	}
	s, found := charts.ByName(result, name)
	if !found {
		writeError(ctx, w, http.StatusNotFound, fmt.Sprintf("unknown chart %q", name))
		return
	}
	if format == "" {
		writeJSON(ctx, w, http.StatusOK, adapters.MapSeriesToApi(s))
		return
	}
	if s.Empty() {
		writeError(ctx, w, http.StatusNotFound, "No data available")
		return
	}

	cfg := h.charts
	cfg.Format = format
	if format == render.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	if err := render.Series(w, s, cfg); err != nil {
		logger.Error().
			Err(err).
			Str("chart", name).
			Msg("failed to render chart")
	}
}

func (h *Handler) SearchLedger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	product := r.URL.Query().Get("product")
	date := r.URL.Query().Get("date")

	result, ok := h.load(w, r)
	if !ok {
		return
	}

	matches, err := ledger.Search(result.DailyDetails, product, date)
	switch {
	case errors.Is(err, ledger.ErrNoData):
		writeError(ctx, w, http.StatusNotFound, ledger.Message(nil, err))
		return
	case err != nil:
		writeError(ctx, w, http.StatusBadRequest, ledger.Message(nil, err))
		return
	}

	day := ledger.NormalizeDate(date)
	if day == "" {
		day = date
	}
	writeJSON(ctx, w, http.StatusOK, api.LedgerSearchResponse{
		Product: product,
		Date:    day,
		Records: adapters.MapLedgerMatchesToApi(matches),
		Message: ledger.Message(matches, nil),
	})
}

// Upload forwards the multipart field "file" to the analysis service and
// caches the validated result.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	f, header, err := r.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(ctx, w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File is too large. The limit is %d bytes.", tooLarge.Limit))
		return
	}
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, upload.Message(upload.ErrNoFileSelected))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, upload.Message(err))
		return
	}

	result, err := h.uploader.Upload(ctx, upload.File{Name: header.Filename, Content: content})
	if err != nil {
		writeError(ctx, w, uploadStatus(err), upload.Message(err))
		return
	}

	if err := h.cache.Put(ctx, result); err != nil {
		logger.Warn().Err(err).Msg("analysis received but could not be persisted")
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapAnalysisResultDomainToApi(result))
}

// ExportWorkbook streams the cached result as an xlsx workbook.
func (h *Handler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	result, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf, result, h.currency); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to build workbook")
		writeError(r.Context(), w, http.StatusInternalServerError, "Failed to export analysis.")
		return
	}

	w.Header().Set("Content-Type", xlsxMediaType)
	w.Header().Set("Content-Disposition", `attachment; filename="analysis.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write workbook")
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*domain.AnalysisResult, bool) {
	result, ok := h.cache.Get(r.Context())
	if !ok {
		writeError(r.Context(), w, http.StatusNotFound, report.NoAnalysisMessage)
		return nil, false
	}
	return result, true
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, upload.ErrNoFileSelected):
		return http.StatusBadRequest
	case errors.Is(err, upload.ErrUploadInProgress):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, api.ErrorResponse{Error: msg})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Int("status", status).
			Msg("failed to encode response")
	}
}
