package predictor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Regressor is a linear model. Fitted marks coefficients produced by
// training; placeholder artifacts leave it false and Load warns about them.
type Regressor struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Fitted       bool      `json:"fitted"`
}

func (r *Regressor) Predict(x []float64) (float64, error) {
	if len(x) != len(r.Coefficients) {
		return 0, fmt.Errorf("%w: got %d features, model expects %d",
			ErrDimensionMismatch, len(x), len(r.Coefficients))
	}
	return floats.Dot(r.Coefficients, x) + r.Intercept, nil
}
