package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisBody = `{
	"totalSales": 150, "totalCOGS": 60, "profitOrLoss": 90,
	"productSales": {"headers": ["Product", "Sales"], "rows": [["Widget", 100], ["Gadget", 50]]},
	"lowSalesProducts": {"headers": ["Product", "Sales"], "rows": [["Gadget", 50]]},
	"predictedSales": {"daily": 5, "monthly": 150, "yearly": 1800},
	"growthAnalysis": {"daily_growth": [0.05], "monthly_growth": [0.1], "yearly_growth": [0.2]},
	"dailyDetails": [["2025-03-01", "Widget", 100, 40, 60]]
}`

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func TestClient_Upload_Success(t *testing.T) {
	var gotName, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotName, gotContent = header.Filename, string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(analysisBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	res, err := c.Upload(testContext(), File{Name: "sales.xlsx", Content: []byte("PK-bytes")})

	require.NoError(t, err)
	assert.Equal(t, "sales.xlsx", gotName)
	assert.Equal(t, "PK-bytes", gotContent)
	assert.Equal(t, float64(150), res.TotalSales)
	assert.Len(t, res.DailyDetails, 1)
	assert.False(t, c.Busy())
}

func TestClient_Upload_NoFileNeverCallsServer(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Upload(testContext(), File{Name: "empty.xlsx"})
	assert.ErrorIs(t, err, ErrNoFileSelected)

	_, err = c.UploadPath(testContext(), "")
	assert.ErrorIs(t, err, ErrNoFileSelected)

	_, err = c.UploadPath(testContext(), filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrNoFileSelected)

	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, "Please select a file to upload.", Message(err))
}

func TestClient_UploadPath_ReadsFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "report.csv", header.Filename)
		_, _ = w.Write([]byte(analysisBody))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("Product,Date,Sales,COGS\n"), 0o644))

	res, err := NewClient(srv.URL).UploadPath(testContext(), path)

	require.NoError(t, err)
	assert.Equal(t, float64(90), res.ProfitOrLoss)
}

func TestClient_Upload_ServerErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"json error body", http.StatusBadRequest, `{"error": "Missing column: COGS"}`, "Missing column: COGS"},
		{"plain body", http.StatusInternalServerError, `<html>oops</html>`, "Server Error: 500"},
		{"empty error field", http.StatusBadGateway, `{"error": ""}`, "Server Error: 502"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Upload(testContext(), File{Name: "a.xlsx", Content: []byte("x")})

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrServer)
			var serverErr *ServerError
			require.ErrorAs(t, err, &serverErr)
			assert.Equal(t, tc.status, serverErr.StatusCode)
			assert.Equal(t, tc.expected, serverErr.Message)
			assert.Equal(t, "Failed to upload file: "+tc.expected, Message(err))
		})
	}
}

func TestClient_Upload_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Upload(testContext(), File{Name: "a.xlsx", Content: []byte("x")})

	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrServer)
}

func TestClient_Upload_InvalidPayload(t *testing.T) {
	tests := map[string]string{
		"not json":       `not json`,
		"missing fields": `{"totalSales": 1}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Upload(testContext(), File{Name: "a.xlsx", Content: []byte("x")})

			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestClient_Upload_ResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(analysisBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.maxBody = 64

	_, err := c.Upload(testContext(), File{Name: "a.xlsx", Content: []byte("x")})

	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.NotErrorIs(t, err, ErrInvalidPayload)
	assert.Equal(t, "Failed to upload file: response too large: more than 64 bytes", Message(err))
	assert.False(t, c.Busy())
}

func TestClient_Upload_BodyAtLimitIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(analysisBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.maxBody = int64(len(analysisBody))

	res, err := c.Upload(testContext(), File{Name: "a.xlsx", Content: []byte("x")})

	require.NoError(t, err)
	assert.Equal(t, float64(150), res.TotalSales)
}

func TestClient_Upload_RejectsConcurrentUpload(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		_, _ = w.Write([]byte(analysisBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithTimeout(5*time.Second))
	done := make(chan error, 1)
	go func() {
		_, err := c.Upload(testContext(), File{Name: "a.xlsx", Content: []byte("x")})
		done <- err
	}()

	<-entered
	assert.True(t, c.Busy())
	_, err := c.Upload(testContext(), File{Name: "b.xlsx", Content: []byte("y")})
	assert.ErrorIs(t, err, ErrUploadInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Busy())
}

func TestClient_Upload_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	_, err := NewClient(srv.URL).Upload(ctx, File{Name: "a.xlsx", Content: []byte("x")})

	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}
