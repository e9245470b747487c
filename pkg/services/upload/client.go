// Package upload sends a sales spreadsheet to the analysis service and
// returns the validated analysis result.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://aimodel-yq14.onrender.com"
	uploadPath     = "/upload"
	formField      = "file"
	maxBodyBytes   = 64 << 20
)

// File is a spreadsheet picked for upload.
type File struct {
	Name    string
	Content []byte
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxBody    int64
	busy       atomic.Bool
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		maxBody:    maxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether an upload is in flight.
func (c *Client) Busy() bool {
	return c.busy.Load()
}

// UploadPath reads the file at path and uploads it.
func (c *Client) UploadPath(ctx context.Context, path string) (*domain.AnalysisResult, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoFileSelected
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrNoFileSelected, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.Upload(ctx, File{Name: filepath.Base(path), Content: content})
}

// Upload posts the file as multipart field "file" and decodes the analysis
// result. It never retries, and a call made while another is pending fails
// with ErrUploadInProgress.
func (c *Client) Upload(ctx context.Context, file File) (*domain.AnalysisResult, error) {
	if len(file.Content) == 0 {
		return nil, ErrNoFileSelected
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrUploadInProgress
	}
	defer c.busy.Store(false)

	logger := zerolog.Ctx(ctx)
	start := time.Now()

	body, contentType, err := encodeForm(file)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	logger.Debug().
		Str("file", file.Name).
		Int("bytes", len(file.Content)).
		Str("url", req.URL.String()).
		Msg("uploading report")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}
	tooLarge := int64(len(data)) > c.maxBody
	if tooLarge {
		data = data[:c.maxBody]
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serverErr := newServerError(resp.StatusCode, data)
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("message", serverErr.Message).
			Msg("analysis service rejected upload")
		return nil, serverErr
	}
	if tooLarge {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody)
	}

	var payload api.AnalysisResult
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	result, err := adapters.MapAnalysisResultApiToDomain(payload)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("file", file.Name).
		Dur("elapsed", time.Since(start)).
		Int("products", len(result.ProductSales.Rows)).
		Int("ledger_records", len(result.DailyDetails)).
		Msg("upload successful")
	return result, nil
}

func encodeForm(file File) (io.Reader, string, error) {
	name := file.Name
	if name == "" {
		name = "report.xlsx"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(formField, name)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func newServerError(status int, body []byte) *ServerError {
	var errRes api.ErrorResponse
	if err := json.Unmarshal(body, &errRes); err == nil && strings.TrimSpace(errRes.Error) != "" {
		return &ServerError{StatusCode: status, Message: errRes.Error}
	}
	return &ServerError{StatusCode: status, Message: fmt.Sprintf("Server Error: %d", status)}
}
