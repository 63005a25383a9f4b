package middleware

import (
	"net/http"
	"strings"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/gzipcomp"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
)

// GzipCompressor decompresses gzipped request bodies and compresses JSON
// responses for clients that accept gzip. Binary downloads (PDF, ZIP) are
// already compressed and skipped.
type GzipCompressor struct {
	log logger.Logger
}

func NewGzipCompressor(log logger.Logger) *GzipCompressor {
	return &GzipCompressor{
		log: log,
	}
}

func (c *GzipCompressor) CompressHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			c.log.Debug("decompressing gzipped request body")

			zr, err := gzipcomp.NewGzipCompressReader(r.Body)
			if err != nil {
				c.log.Errorf("failed to read gzipped request body: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = zr
			defer r.Body.Close()
		}

		if strings.HasPrefix(r.URL.Path, "/api/export/") {
			next.ServeHTTP(w, r)
			return
		}

		supportGzip := false
		for _, value := range r.Header.Values("Accept-Encoding") {
			if strings.Contains(value, "gzip") {
				supportGzip = true
				break
			}
		}

		if !supportGzip {
			next.ServeHTTP(w, r)
			return
		}

		c.log.Debug("client supports gzip, buffering response")

		rw := gzipcomp.NewGzipResponseWriter(w)
		next.ServeHTTP(rw, r)

		contentType := rw.Header().Get("Content-Type")
		if strings.HasPrefix(contentType, "application/json") || strings.HasPrefix(contentType, "text/html") {
			cw := gzipcomp.NewGzipCompressWriter(w)
			cw.Header().Set("Content-Encoding", "gzip")
			defer cw.Close()
			rw.WriteTo(cw)
			return
		}

		rw.WriteTo(w)
	})
}
