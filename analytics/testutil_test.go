package analytics

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func delayFrame(delays, deltas []float64, checkins []string) dataframe.DataFrame {
	return dataframe.New(
		series.New(delays, series.Float, ColDelayMinutes),
		series.New(deltas, series.Float, ColDeltaMinutes),
		series.New(checkins, series.String, ColCheckinType),
	)
}

func priceFrame(prices ...float64) dataframe.DataFrame {
	return dataframe.New(series.New(prices, series.Float, ColDailyPrice))
}

// sampleDataset has 8 delay records: two outliers and six trimmed rows, four
// of which are late (0.5h, 1h, 2h, 3h).
func sampleDataset(t *testing.T) *Dataset {
	t.Helper()
	delays := delayFrame(
		[]float64{30, 60, 120, 180, -45, 0, 900, -800},
		[]float64{nan, 30, 120, 600, 60, nan, 10, 10},
		[]string{"mobile", "connect", "mobile", "mobile", "connect", "mobile", "mobile", "connect"},
	)
	ds, err := NewDataset(delays, priceFrame(1000, 234.5))
	require.NoError(t, err)
	return ds
}
