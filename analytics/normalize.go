package analytics

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	ColDelayMinutes = "delay_at_checkout_in_minutes"
	ColDeltaMinutes = "time_delta_with_previous_rental_in_minutes"
	ColCheckinType  = "checkin_type"
	ColDailyPrice   = "rental_price_per_day"
)

const minutesPerHour = 60.0

// HoursColumn names the hour-denominated twin of a minute column.
func HoursColumn(column string) string {
	return strings.TrimSuffix(column, "_in_minutes") + "_in_hours"
}

// MinutesToHours returns a copy of df with HoursColumn(column) attached.
// Null minutes stay null.
func MinutesToHours(df dataframe.DataFrame, column string) (dataframe.DataFrame, error) {
	if !hasColumn(df, column) {
		return df, fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}

	minutes := df.Col(column).Float()
	hours := make([]float64, len(minutes))
	for i, m := range minutes {
		hours[i] = m / minutesPerHour
	}

	out := df.Mutate(series.New(hours, series.Float, HoursColumn(column)))
	if out.Err != nil {
		return df, fmt.Errorf("attach %s: %w", HoursColumn(column), out.Err)
	}
	return out, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
