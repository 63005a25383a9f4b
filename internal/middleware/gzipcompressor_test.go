package middleware

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoHandler decodes the JSON body and writes it back
func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(payload)
	})
}

func gzipBody(t *testing.T, content string) *bytes.Buffer {
	t.Helper()

	buf := bytes.NewBuffer(nil)
	zw := gzip.NewWriter(buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf
}

func TestCompressHandler_GzippedRequestBody(t *testing.T) {
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(echoHandler())

	body := `{"name":"Krishna Das"}`
	req := httptest.NewRequest(http.MethodPost, "/api/coupons", gzipBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, body, rec.Body.String())
}

func TestCompressHandler_CorruptGzippedRequestBody(t *testing.T) {
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(echoHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/coupons", bytes.NewBufferString("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompressHandler_CompressesJSONResponse(t *testing.T) {
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(echoHandler())

	body := `{"name":"Krishna Das"}`
	req := httptest.NewRequest(http.MethodPost, "/api/coupons", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	decompressed, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(decompressed))
}

func TestCompressHandler_GzippedRoundTrip(t *testing.T) {
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(echoHandler())

	body := `{"name":"Krishna Das"}`
	req := httptest.NewRequest(http.MethodPost, "/api/coupons", gzipBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	decompressed, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(decompressed))
}

func TestCompressHandler_NoAcceptEncoding(t *testing.T) {
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(echoHandler())

	body := `{"name":"Krishna Das"}`
	req := httptest.NewRequest(http.MethodPost, "/api/coupons", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.JSONEq(t, body, rec.Body.String())
}

func TestCompressHandler_SkipsExportDownloads(t *testing.T) {
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("PK archive"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/export/zip", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "PK archive", rec.Body.String())
}
