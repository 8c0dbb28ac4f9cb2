// Command seed loads the delay workbook and the pricing CSV into Postgres so
// the API can run with DATA_SOURCE=postgres.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"getaround-api/config"
	"getaround-api/dataset"
	"getaround-api/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := dataset.FileSource{
		PricingPath: cfg.Data.PricingPath,
		DelayPath:   cfg.Data.DelayPath,
		DelaySheet:  cfg.Data.DelaySheet,
	}
	delayFrame, err := src.Delays(ctx)
	if err != nil {
		log.Fatalf("Failed to read delays: %v", err)
	}
	priceFrame, err := src.Prices(ctx)
	if err != nil {
		log.Fatalf("Failed to read prices: %v", err)
	}

	delays, err := dataset.DelayRows(delayFrame)
	if err != nil {
		log.Fatalf("Failed to convert delays: %v", err)
	}
	prices, err := dataset.PriceRows(priceFrame)
	if err != nil {
		log.Fatalf("Failed to convert prices: %v", err)
	}

	db, err := dataset.OpenPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := dataset.Seed(ctx, db, delays, prices); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
}
