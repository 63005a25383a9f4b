package server

import (
	"context"
	"net/http"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
)

type middlewareFunc func(next http.Handler) http.Handler

// CouponServer wraps http.Server with an outer middleware chain and
// graceful shutdown.
type CouponServer struct {
	log         logger.Logger
	middlewares []middlewareFunc
	mux         http.Handler
	address     string
	server      *http.Server
}

func NewCouponServer(address string, mux http.Handler, log logger.Logger) *CouponServer {
	return &CouponServer{
		address: address,
		mux:     mux,
		log:     log,
	}
}

// AddMiddleware appends handlers to the outer chain; they wrap the mux in
// reverse registration order.
func (cs *CouponServer) AddMiddleware(funcs ...middlewareFunc) {
	cs.middlewares = append(cs.middlewares, funcs...)
}

func (cs *CouponServer) RunServer() {
	handler := cs.mux

	for _, f := range cs.middlewares {
		handler = f(handler)
	}

	cs.server = &http.Server{
		Addr:    cs.address,
		Handler: handler,
	}
	cs.log.Infof("Starting server on %s", cs.address)
	if err := cs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		cs.log.Errorf("starting server on %s error: %s", cs.address, err)
	}
}

func (cs *CouponServer) Shutdown(ctx context.Context) error {
	return cs.server.Shutdown(ctx)
}
