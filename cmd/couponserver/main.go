package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/cache"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/config"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/coupon"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/export"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/gateway"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/handlers"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/middleware"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/pdf"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/server"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/service"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/session"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/store"
)

func main() {
	conf, err := config.LoadConfig("")
	if err != nil {
		panic(err)
	}
	log, err := logger.NewZapLogger(conf)
	if err != nil {
		panic(err)
	}
	log.Info("Initialized logger")

	// Local durable cache
	var localCache cache.Cache
	var cacheErr error

	switch conf.Cache.Type {
	case "sqlite":
		log.Info("Initializing SQLite cache")
		localCache, cacheErr = cache.NewSQLiteCache(conf.Cache.DBPath, conf.Cache.MigrationsPath)
	case "memory":
		log.Info("Initializing memory cache")
		localCache = cache.NewMemcache()
	default:
		log.Info("Initializing file cache")
		localCache, cacheErr = cache.NewFilecache(conf.Cache.DataPath)
	}
	if cacheErr != nil {
		log.Errorf("Failed to initialize cache: %v", cacheErr)
		panic(cacheErr)
	}
	defer func() {
		if err := localCache.Close(); err != nil {
			log.Errorf("Failed to close cache: %v", err)
		}
	}()
	log.Info("Cache initialized successfully")

	// Remote registry client
	gw := gateway.NewClient(conf.Gateway.URL, time.Duration(conf.Gateway.TimeoutSeconds)*time.Second, log)

	// Coupon core
	allocator, err := coupon.NewAllocator()
	if err != nil {
		log.Errorf("Failed to initialize code allocator: %v", err)
		panic(err)
	}
	couponStore := store.NewCouponStore(localCache, conf.Cache.SeedPath, log)
	couponService := service.NewCouponService(couponStore, gw, allocator, conf.Coupon.LegacyNaming, log)
	log.Info("Coupon service initialized")

	// Sessions
	jwtManager := session.NewJWTManager(conf.Session.JWTSecret)
	credentials := session.NewCredentialManager(conf.Auth.CredentialsPath)
	sessions := session.NewManager(jwtManager, gw, credentials, conf.Auth.Username, localCache, log)

	// PDF and bulk export
	renderer := pdf.NewRenderer(conf.PDF)
	exportJob := export.NewJob(gw, renderer, log)

	router := handlers.NewRouter(log, couponService, sessions, exportJob, renderer)

	couponServer := server.NewCouponServer(conf.Server.RunAddress, router, log)

	hLogger := middleware.NewHTTPLogger(log)
	compressor := middleware.NewGzipCompressor(log)
	log.Info("Initialized middleware functions")

	couponServer.AddMiddleware(hLogger.HTTPLogHandler, compressor.CompressHandler)

	go couponServer.RunServer()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Initialized shutdown")
	if err := couponServer.Shutdown(context.Background()); err != nil {
		log.Errorf("Cannot stop server %s", err)
	}

	if err := log.Close(); err != nil {
		panic(err)
	}
}
