package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"getaround-api/config"
	"getaround-api/dataset"
	"getaround-api/handlers"
	"getaround-api/logging"
	"getaround-api/predictor"
	"getaround-api/services"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logOut := logging.Setup(cfg.Log)
	gin.SetMode(cfg.Server.GinMode)
	gin.DefaultWriter = logOut
	gin.DefaultErrorWriter = logOut

	if err := handlers.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pricing model
	model, err := predictor.Load(cfg.Model.TransformerPath, cfg.Model.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load pricing model: %v", err)
	}

	// Delay and pricing tables
	src, err := newSource(cfg)
	if err != nil {
		log.Fatalf("Failed to open data source: %v", err)
	}
	ds, err := dataset.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	// Redis is optional: without it nothing is cached or published
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
	}
	defer cache.Close()

	router := setupRouter(app{cfg: cfg, model: model, dataset: ds, cache: cache}, logOut)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

func newSource(cfg *config.Config) (dataset.Source, error) {
	if cfg.Data.Source == config.SourcePostgres {
		db, err := dataset.OpenPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return dataset.NewPostgresSource(db), nil
	}
	return dataset.FileSource{
		PricingPath: cfg.Data.PricingPath,
		DelayPath:   cfg.Data.DelayPath,
		DelaySheet:  cfg.Data.DelaySheet,
	}, nil
}
