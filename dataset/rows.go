package dataset

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"getaround-api/analytics"
	"getaround-api/models"

	"github.com/go-gota/gota/dataframe"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	colRentalID       = "rental_id"
	colCarID          = "car_id"
	colState          = "state"
	colPreviousRental = "previous_ended_rental_id"
	colModelKey       = "model_key"
)

const seedBatchSize = 500

// DelayRows converts a delay table as read from the workbook into database
// rows.
func DelayRows(df dataframe.DataFrame) ([]models.RentalDelay, error) {
	cols := []string{colRentalID, colCarID, analytics.ColCheckinType, colState,
		analytics.ColDelayMinutes, colPreviousRental, analytics.ColDeltaMinutes}
	if err := requireColumns(df, cols...); err != nil {
		return nil, err
	}

	rentalIDs := df.Col(colRentalID).Records()
	carIDs := df.Col(colCarID).Records()
	checkins := df.Col(analytics.ColCheckinType).Records()
	states := df.Col(colState).Records()
	delays := df.Col(analytics.ColDelayMinutes).Float()
	previous := df.Col(colPreviousRental).Records()
	deltas := df.Col(analytics.ColDeltaMinutes).Float()

	rows := make([]models.RentalDelay, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		rentalID, err := parseID(rentalIDs[i])
		if err != nil || rentalID == nil {
			return nil, fmt.Errorf("row %d: invalid %s %q", i+1, colRentalID, rentalIDs[i])
		}
		carID, err := parseID(carIDs[i])
		if err != nil || carID == nil {
			return nil, fmt.Errorf("row %d: invalid %s %q", i+1, colCarID, carIDs[i])
		}
		prev, err := parseID(previous[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s %q", i+1, colPreviousRental, previous[i])
		}

		rows = append(rows, models.RentalDelay{
			RentalID:                       *rentalID,
			CarID:                          *carID,
			CheckinType:                    checkins[i],
			State:                          states[i],
			DelayAtCheckoutInMinutes:       nullable(delays[i]),
			PreviousEndedRentalID:          prev,
			TimeDeltaWithPreviousInMinutes: nullable(deltas[i]),
		})
	}
	return rows, nil
}

// PriceRows converts the pricing table into database rows. Rows without a
// price are skipped.
func PriceRows(df dataframe.DataFrame) ([]models.RentalPrice, error) {
	if err := requireColumns(df, colModelKey, analytics.ColDailyPrice); err != nil {
		return nil, err
	}

	keys := df.Col(colModelKey).Records()
	prices := df.Col(analytics.ColDailyPrice).Float()

	rows := make([]models.RentalPrice, 0, len(prices))
	for i, price := range prices {
		if math.IsNaN(price) {
			continue
		}
		rows = append(rows, models.RentalPrice{
			ID:                int64(i + 1),
			ModelKey:          keys[i],
			RentalPricePerDay: price,
		})
	}
	return rows, nil
}

// Seed creates both tables if needed and upserts the rows in batches.
func Seed(ctx context.Context, db *gorm.DB, delays []models.RentalDelay, prices []models.RentalPrice) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&models.RentalDelay{}, &models.RentalPrice{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		if len(delays) > 0 {
			if err := upsert.CreateInBatches(delays, seedBatchSize).Error; err != nil {
				return fmt.Errorf("insert %s: %w", models.RentalDelay{}.TableName(), err)
			}
		}
		if len(prices) > 0 {
			if err := upsert.CreateInBatches(prices, seedBatchSize).Error; err != nil {
				return fmt.Errorf("insert %s: %w", models.RentalPrice{}.TableName(), err)
			}
		}
		log.Printf("seeded %d delay rows and %d price rows", len(delays), len(prices))
		return nil
	})
}

func requireColumns(df dataframe.DataFrame, cols ...string) error {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, col := range cols {
		if !present[col] {
			return fmt.Errorf("%w: %s", analytics.ErrMissingColumn, col)
		}
	}
	return nil
}

// parseID reads an integer id that may have been stored as a float cell.
// Missing values give nil.
func parseID(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NaN", "nan", "NA", "<nil>":
		return nil, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	v := int64(f)
	return &v, nil
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
