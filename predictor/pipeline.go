package predictor

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"getaround-api/models"
)

// Pipeline is the loaded transformer and regressor. It is read-only after
// Load and safe for concurrent use.
type Pipeline struct {
	transformer *Transformer
	regressor   *Regressor
}

func New(t *Transformer, r *Regressor) (*Pipeline, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	if len(r.Coefficients) == 0 {
		return nil, fmt.Errorf("%w: regressor has no coefficients", ErrInvalidArtifact)
	}
	if w := t.Width(); w != len(r.Coefficients) {
		return nil, fmt.Errorf("%w: transformer emits %d columns, regressor has %d coefficients",
			ErrDimensionMismatch, w, len(r.Coefficients))
	}
	return &Pipeline{transformer: t.normalized(), regressor: r}, nil
}

// Load reads both artifacts from disk.
func Load(transformerPath, modelPath string) (*Pipeline, error) {
	var t Transformer
	if err := readJSON(transformerPath, &t); err != nil {
		return nil, fmt.Errorf("load transformer: %w", err)
	}
	var r Regressor
	if err := readJSON(modelPath, &r); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	p, err := New(&t, &r)
	if err != nil {
		return nil, err
	}
	log.Printf("pricing model loaded: %d input columns (%s, %s)", len(r.Coefficients), transformerPath, modelPath)
	if !r.Fitted {
		log.Printf("WARNING: %s is not marked as fitted; its coefficients are placeholders and predictions are illustrative only", modelPath)
	}
	return p, nil
}

func (p *Pipeline) Predict(f models.CarFeatures) (float64, error) {
	return p.regressor.Predict(p.transformer.Transform(f))
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}
	return nil
}
