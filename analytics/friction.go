package analytics

import "math"

// Estimate is a count of affected rows out of Total, with their ratio.
type Estimate struct {
	Count    int     `json:"count"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
}

func (e Estimate) Percent() float64 { return e.Fraction * 100 }

func newEstimate(count, total int) Estimate {
	return Estimate{Count: count, Total: total, Fraction: float64(count) / float64(total)}
}

// Friction counts late delays that still exceed threshold hours.
func Friction(lateDelays []float64, threshold float64) (Estimate, error) {
	if len(lateDelays) == 0 {
		return Estimate{}, ErrEmptySubset
	}
	count := 0
	for _, delay := range lateDelays {
		if delay > threshold {
			count++
		}
	}
	return newEstimate(count, len(lateDelays)), nil
}

func (d *Dataset) Friction(threshold float64) (Estimate, error) {
	return Friction(d.lateDelay, threshold)
}

type CurvePoint struct {
	Threshold float64 `json:"threshold"`
	Percent   float64 `json:"percent"`
}

// FrictionCurve samples the friction percentage from `from` to `to`
// inclusive, every step hours.
func (d *Dataset) FrictionCurve(from, to, step float64) ([]CurvePoint, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, ErrInvalidStep
	}
	if len(d.lateDelay) == 0 {
		return nil, ErrEmptySubset
	}

	n := int(math.Floor((to-from)/step+1e-9)) + 1
	if n < 0 {
		n = 0
	}
	points := make([]CurvePoint, 0, n)
	for i := 0; i < n; i++ {
		threshold := from + float64(i)*step
		est, err := d.Friction(threshold)
		if err != nil {
			return nil, err
		}
		points = append(points, CurvePoint{Threshold: threshold, Percent: est.Percent()})
	}
	return points, nil
}
