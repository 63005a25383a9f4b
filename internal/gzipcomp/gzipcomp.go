package gzipcomp

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
)

// GzipCompressWriter is an http.ResponseWriter that gzips the body.
type GzipCompressWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
}

func NewGzipCompressWriter(w http.ResponseWriter) *GzipCompressWriter {
	return &GzipCompressWriter{
		ResponseWriter: w,
		zw:             gzip.NewWriter(w),
	}
}

func (gw *GzipCompressWriter) Write(b []byte) (int, error) {
	gw.WriteHeader(200)
	return gw.zw.Write(b)
}

func (gw *GzipCompressWriter) WriteHeader(statusCode int) {
	if gw.wroteHeader {
		return
	}
	gw.wroteHeader = true
	if statusCode < 300 {
		gw.ResponseWriter.Header().Set("Content-Encoding", "gzip")
	}
	gw.ResponseWriter.WriteHeader(statusCode)
}

// Close flushes the compressed stream. Must be called after the handler
// finishes.
func (gw *GzipCompressWriter) Close() error {
	return gw.zw.Close()
}

// GzipResponseWriter buffers the response so the middleware can decide,
// based on the final Content-Type, whether compressing is worth it. The
// status code is held back until WriteTo so Content-Encoding can still be
// set.
type GzipResponseWriter struct {
	w      http.ResponseWriter
	buffer *bytes.Buffer
	status int
}

func NewGzipResponseWriter(w http.ResponseWriter) *GzipResponseWriter {
	return &GzipResponseWriter{
		w:      w,
		buffer: bytes.NewBuffer(nil),
	}
}

func (rw *GzipResponseWriter) WriteTo(wr http.ResponseWriter) {
	if rw.status != 0 {
		wr.WriteHeader(rw.status)
	}
	rw.buffer.WriteTo(wr)
}

func (rw *GzipResponseWriter) Header() http.Header {
	return rw.w.Header()
}

func (rw *GzipResponseWriter) Write(data []byte) (int, error) {
	if rw.status == 0 {
		rw.status = 200
	}
	return rw.buffer.Write(data)
}

func (rw *GzipResponseWriter) WriteHeader(statusCode int) {
	rw.status = statusCode
}

// GzipCompressReader is an io.ReadCloser that decompresses a gzipped
// request body.
type GzipCompressReader struct {
	io.ReadCloser
	zr *gzip.Reader
}

func NewGzipCompressReader(r io.ReadCloser) (*GzipCompressReader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &GzipCompressReader{
		ReadCloser: r,
		zr:         zr,
	}, nil
}

func (gr *GzipCompressReader) Read(b []byte) (int, error) {
	return gr.zr.Read(b)
}

func (gr *GzipCompressReader) Close() error {
	if err := gr.ReadCloser.Close(); err != nil {
		return err
	}
	return gr.zr.Close()
}
