package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/render"
	"github.com/de-tools/sales-atlas/pkg/services/upload"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context) (*domain.AnalysisResult, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Bool(1)
}

func (m *mockCache) Put(ctx context.Context, result *domain.AnalysisResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, file upload.File) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandler_GetChart_EmptySeriesImage(t *testing.T) {
	cache := new(mockCache)
	cache.On("Get", mock.Anything).Return(&domain.AnalysisResult{}, true)
	h := NewHandler(cache, new(mockUploader), "Ksh", render.DefaultConfig())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/charts/growth.svg", nil), "name", "growth.svg")
	rec := httptest.NewRecorder()
	h.GetChart(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No data available", body.Error)
}

func TestHandler_GetChart_EmptySeriesJSON(t *testing.T) {
	cache := new(mockCache)
	cache.On("Get", mock.Anything).Return(&domain.AnalysisResult{}, true)
	h := NewHandler(cache, new(mockUploader), "Ksh", render.DefaultConfig())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/charts/growth", nil), "name", "growth")
	rec := httptest.NewRecorder()
	h.GetChart(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"name": "growth",
		"title": "Sales Growth Analysis",
		"label": "Sales Growth (%)",
		"kind": "line",
		"labels": [],
		"values": []
	}`, rec.Body.String())
}

func TestHandler_Upload_PersistFailureStillAnswers(t *testing.T) {
	result := &domain.AnalysisResult{TotalSales: 10}
	cache := new(mockCache)
	cache.On("Put", mock.Anything, result).Return(errors.New("read-only"))
	uploader := new(mockUploader)
	uploader.On("Upload", mock.Anything, upload.File{Name: "sales.xlsx", Content: []byte("PK")}).Return(result, nil)
	h := NewHandler(cache, uploader, "Ksh", render.DefaultConfig())

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "sales.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("PK"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var payload api.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.TotalSales)
	assert.Equal(t, float64(10), *payload.TotalSales)
	cache.AssertExpectations(t)
}

func TestHandler_Upload_TooLarge(t *testing.T) {
	cache := new(mockCache)
	uploader := new(mockUploader)
	h := NewHandler(cache, uploader, "Ksh", render.DefaultConfig())
	h.maxUpload = 256

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "sales.xlsx")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 8192))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "File is too large. The limit is 256 bytes.", body.Error)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestUploadStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, uploadStatus(upload.ErrNoFileSelected))
	assert.Equal(t, http.StatusConflict, uploadStatus(upload.ErrUploadInProgress))
	assert.Equal(t, http.StatusBadGateway, uploadStatus(&upload.NetworkError{Err: errors.New("refused")}))
	assert.Equal(t, http.StatusBadGateway, uploadStatus(&upload.ServerError{StatusCode: 500, Message: "boom"}))
}
