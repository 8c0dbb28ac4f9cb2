package dataset

import (
	"context"
	"fmt"
	"log"

	"getaround-api/analytics"

	"github.com/go-gota/gota/dataframe"
)

// Source provides the raw delay and pricing tables.
type Source interface {
	Delays(ctx context.Context) (dataframe.DataFrame, error)
	Prices(ctx context.Context) (dataframe.DataFrame, error)
}

// Load reads both tables from src and builds the analytics snapshot.
func Load(ctx context.Context, src Source) (*analytics.Dataset, error) {
	delays, err := src.Delays(ctx)
	if err != nil {
		return nil, fmt.Errorf("load delays: %w", err)
	}
	prices, err := src.Prices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}

	ds, err := analytics.NewDataset(delays, prices)
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}

	log.Printf("dataset loaded: %d delay records (%d trimmed, %d late), %d price records",
		ds.Size(), ds.TrimmedSize(), ds.LateSize(), prices.Nrow())
	return ds, nil
}
