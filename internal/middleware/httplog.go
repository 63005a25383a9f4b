package middleware

import (
	"net/http"
	"time"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
)

// httpLogger is the logger surface the request/response middleware needs.
type httpLogger interface {
	logger.Logger
	RequestLog(method string, path string)
	ResponseLog(status int, size int, duration time.Duration)
}

type responseData struct {
	status int
	size   int
}

type HTTPLogger struct {
	log httpLogger
}

func NewHTTPLogger(logger httpLogger) *HTTPLogger {
	return &HTTPLogger{logger}
}

// loggingResponseWriter wraps ResponseWriter and records status and size
type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	if r.responseData.status == 0 {
		r.responseData.status = 200
	}
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.responseData.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (l *HTTPLogger) HTTPLogHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.log.RequestLog(r.Method, r.RequestURI)

		start := time.Now()

		resD := &responseData{}

		lw := &loggingResponseWriter{
			ResponseWriter: w,
			responseData:   resD,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)
		l.log.ResponseLog(resD.status, resD.size, duration)
	})
}
