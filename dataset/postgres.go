package dataset

import (
	"context"
	"fmt"
	"log"
	"math"

	"getaround-api/analytics"
	"getaround-api/config"
	"getaround-api/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresSource reads the same tables from Postgres. It never writes.
type PostgresSource struct {
	db *gorm.DB
}

func NewPostgresSource(db *gorm.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func OpenPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Printf("database connected: %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}

func (s *PostgresSource) Delays(ctx context.Context) (dataframe.DataFrame, error) {
	var rows []models.RentalDelay
	if err := s.db.WithContext(ctx).Order("rental_id").Find(&rows).Error; err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("query %s: %w", models.RentalDelay{}.TableName(), err)
	}
	return DelayFrame(rows), nil
}

func (s *PostgresSource) Prices(ctx context.Context) (dataframe.DataFrame, error) {
	var rows []models.RentalPrice
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("query %s: %w", models.RentalPrice{}.TableName(), err)
	}
	return PriceFrame(rows), nil
}

// DelayFrame converts delay rows into the frame layout of the workbook.
// NULL columns become NaN.
func DelayFrame(rows []models.RentalDelay) dataframe.DataFrame {
	delays := make([]float64, len(rows))
	deltas := make([]float64, len(rows))
	checkins := make([]string, len(rows))
	for i, r := range rows {
		delays[i] = floatOrNaN(r.DelayAtCheckoutInMinutes)
		deltas[i] = floatOrNaN(r.TimeDeltaWithPreviousInMinutes)
		checkins[i] = r.CheckinType
	}
	return dataframe.New(
		series.New(delays, series.Float, analytics.ColDelayMinutes),
		series.New(deltas, series.Float, analytics.ColDeltaMinutes),
		series.New(checkins, series.String, analytics.ColCheckinType),
	)
}

func PriceFrame(rows []models.RentalPrice) dataframe.DataFrame {
	prices := make([]float64, len(rows))
	for i, r := range rows {
		prices[i] = r.RentalPricePerDay
	}
	return dataframe.New(series.New(prices, series.Float, analytics.ColDailyPrice))
}

func floatOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
