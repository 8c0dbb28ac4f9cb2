package analytics

import (
	"fmt"
	"math"
)

// Revenue is the estimated daily revenue with and without the policy.
type Revenue struct {
	TotalDailyPrice         float64 `json:"total_daily_price"`
	AdjustedTotalDailyPrice float64 `json:"adjusted_total_daily_price"`
	LateShare               float64 `json:"late_share"`
	LateDailyPrice          float64 `json:"late_daily_price"`
	AdjustedLateDailyPrice  float64 `json:"adjusted_late_daily_price"`
}

func (r Revenue) Loss() float64 {
	return r.TotalDailyPrice - r.AdjustedTotalDailyPrice
}

// LossPercent is zero when there is no revenue to lose.
func (r Revenue) LossPercent() float64 {
	if r.TotalDailyPrice == 0 {
		return 0
	}
	return r.Loss() / r.TotalDailyPrice * 100
}

// EstimateRevenue removes lateLoss of the late drivers' share of total.
func EstimateRevenue(total, lateShare, lateLoss float64) (Revenue, error) {
	if !inUnitInterval(lateLoss) {
		return Revenue{}, fmt.Errorf("%w: late loss %v", ErrInvalidFraction, lateLoss)
	}
	if !inUnitInterval(lateShare) {
		return Revenue{}, fmt.Errorf("%w: late share %v", ErrInvalidFraction, lateShare)
	}

	late := total * lateShare
	adjustedLate := late * (1 - lateLoss)
	adjusted := adjustedLate + total*(1-lateShare)
	// rounding must not turn a loss into a gain
	adjusted = math.Max(0, math.Min(adjusted, total))

	return Revenue{
		TotalDailyPrice:         total,
		AdjustedTotalDailyPrice: adjusted,
		LateShare:               lateShare,
		LateDailyPrice:          late,
		AdjustedLateDailyPrice:  adjustedLate,
	}, nil
}

// RevenueLoss applies a late-subset inventory loss fraction to the
// dataset's daily prices.
func (d *Dataset) RevenueLoss(lateLoss float64) (Revenue, error) {
	share, err := d.LateShare()
	if err != nil {
		return Revenue{}, err
	}
	return EstimateRevenue(d.totalDailyPrice, share, lateLoss)
}

// RevenueAt chains the late inventory loss at threshold into RevenueLoss.
func (d *Dataset) RevenueAt(threshold float64) (Revenue, Estimate, error) {
	loss, err := d.InventoryLoss(threshold, ScopeLate)
	if err != nil {
		return Revenue{}, Estimate{}, err
	}
	rev, err := d.RevenueLoss(loss.Fraction)
	if err != nil {
		return Revenue{}, Estimate{}, err
	}
	return rev, loss, nil
}

func inUnitInterval(f float64) bool {
	return !math.IsNaN(f) && f >= 0 && f <= 1
}
