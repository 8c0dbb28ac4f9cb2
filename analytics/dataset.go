package analytics

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxDelayHours bounds the checkout delays kept by Trim, on both sides.
const MaxDelayHours = 12.0

// Dataset is the read-only snapshot every estimator works on. It is built
// once by NewDataset and never modified afterwards, so it can be shared
// between goroutines without locking.
type Dataset struct {
	size int

	trimmedDelay []float64
	trimmedDelta []float64

	lateDelay   []float64
	lateDelta   []float64
	lateCheckin []string

	totalDailyPrice float64
}

// NewDataset normalizes the delay table, derives the trimmed and late views
// and sums the daily prices.
func NewDataset(delays, prices dataframe.DataFrame) (*Dataset, error) {
	if delays.Err != nil {
		return nil, fmt.Errorf("delay table: %w", delays.Err)
	}
	if prices.Err != nil {
		return nil, fmt.Errorf("price table: %w", prices.Err)
	}
	for _, col := range []string{ColDelayMinutes, ColDeltaMinutes, ColCheckinType} {
		if !hasColumn(delays, col) {
			return nil, fmt.Errorf("delay table: %w: %s", ErrMissingColumn, col)
		}
	}
	if !hasColumn(prices, ColDailyPrice) {
		return nil, fmt.Errorf("price table: %w: %s", ErrMissingColumn, ColDailyPrice)
	}

	df, err := MinutesToHours(delays, ColDelayMinutes)
	if err != nil {
		return nil, err
	}
	df, err = MinutesToHours(df, ColDeltaMinutes)
	if err != nil {
		return nil, err
	}

	trimmed, err := Trim(df)
	if err != nil {
		return nil, err
	}
	late, err := Late(trimmed)
	if err != nil {
		return nil, err
	}

	total, err := sumPrices(prices.Col(ColDailyPrice).Float())
	if err != nil {
		return nil, err
	}

	delayCol := HoursColumn(ColDelayMinutes)
	deltaCol := HoursColumn(ColDeltaMinutes)
	return &Dataset{
		size:            delays.Nrow(),
		trimmedDelay:    trimmed.Col(delayCol).Float(),
		trimmedDelta:    trimmed.Col(deltaCol).Float(),
		lateDelay:       late.Col(delayCol).Float(),
		lateDelta:       late.Col(deltaCol).Float(),
		lateCheckin:     late.Col(ColCheckinType).Records(),
		totalDailyPrice: total,
	}, nil
}

// Trim drops outliers: rows whose delay in hours is null or outside
// [-MaxDelayHours, MaxDelayHours]. df must already carry the hours column.
func Trim(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	col := HoursColumn(ColDelayMinutes)
	if !hasColumn(df, col) {
		return df, fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	if df.Nrow() == 0 {
		return df, nil
	}

	out := df.
		Filter(dataframe.F{Colname: col, Comparator: series.GreaterEq, Comparando: -MaxDelayHours}).
		Filter(dataframe.F{Colname: col, Comparator: series.LessEq, Comparando: MaxDelayHours})
	if out.Err != nil {
		return df, fmt.Errorf("trim delays: %w", out.Err)
	}
	return out, nil
}

// Late keeps the rows of a trimmed table whose driver returned the car late.
func Late(trimmed dataframe.DataFrame) (dataframe.DataFrame, error) {
	col := HoursColumn(ColDelayMinutes)
	if !hasColumn(trimmed, col) {
		return trimmed, fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	if trimmed.Nrow() == 0 {
		return trimmed, nil
	}

	out := trimmed.Filter(dataframe.F{Colname: col, Comparator: series.Greater, Comparando: 0.0})
	if out.Err != nil {
		return trimmed, fmt.Errorf("select late rentals: %w", out.Err)
	}
	return out, nil
}

func sumPrices(prices []float64) (float64, error) {
	valid := make([]float64, 0, len(prices))
	for _, p := range prices {
		if math.IsNaN(p) {
			continue
		}
		if p < 0 {
			return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, p)
		}
		valid = append(valid, p)
	}
	return floats.Sum(valid), nil
}

// Size is the number of delay records before trimming.
func (d *Dataset) Size() int { return d.size }

func (d *Dataset) TrimmedSize() int { return len(d.trimmedDelay) }

func (d *Dataset) LateSize() int { return len(d.lateDelay) }

func (d *Dataset) TotalDailyPrice() float64 { return d.totalDailyPrice }

// LateShare is |late| / |trimmed|.
func (d *Dataset) LateShare() (float64, error) {
	if len(d.trimmedDelay) == 0 {
		return 0, ErrEmptySubset
	}
	return float64(len(d.lateDelay)) / float64(len(d.trimmedDelay)), nil
}

// MeanLateDelay is the average delay of late drivers, in hours.
func (d *Dataset) MeanLateDelay() (float64, error) {
	if len(d.lateDelay) == 0 {
		return 0, ErrEmptySubset
	}
	return stat.Mean(d.lateDelay, nil), nil
}
