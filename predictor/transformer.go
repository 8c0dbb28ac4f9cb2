package predictor

import (
	"fmt"

	"getaround-api/models"
)

// NumericColumn is standardized as (x - Mean) / Scale.
type NumericColumn struct {
	Name  string  `json:"name"`
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

// CategoricalColumn is one-hot encoded over Categories. With DropFirst the
// first category has no output column. Values outside Categories encode as
// all zeros.
type CategoricalColumn struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	DropFirst  bool     `json:"drop_first"`
}

func (c CategoricalColumn) width() int {
	if c.DropFirst {
		return len(c.Categories) - 1
	}
	return len(c.Categories)
}

// Transformer turns a CarFeatures value into the regressor's input vector:
// numeric columns first, then the one-hot blocks, then the boolean flags as
// 0/1.
type Transformer struct {
	Numeric     []NumericColumn     `json:"numeric"`
	Categorical []CategoricalColumn `json:"categorical"`
	Passthrough []string            `json:"passthrough"`
}

// Width is the length of the vectors produced by Transform.
func (t *Transformer) Width() int {
	n := len(t.Numeric) + len(t.Passthrough)
	for _, c := range t.Categorical {
		n += c.width()
	}
	return n
}

func (t *Transformer) validate() error {
	var probe models.CarFeatures
	numeric, categorical, flags := probe.Numeric(), probe.Categorical(), probe.Flags()

	for _, c := range t.Numeric {
		if _, ok := numeric[c.Name]; !ok {
			return fmt.Errorf("%w: numeric column %q", ErrUnknownFeature, c.Name)
		}
	}
	for _, c := range t.Categorical {
		if _, ok := categorical[c.Name]; !ok {
			return fmt.Errorf("%w: categorical column %q", ErrUnknownFeature, c.Name)
		}
		if len(c.Categories) == 0 {
			return fmt.Errorf("%w: categorical column %q has no categories", ErrInvalidArtifact, c.Name)
		}
	}
	for _, name := range t.Passthrough {
		if _, ok := flags[name]; !ok {
			return fmt.Errorf("%w: passthrough column %q", ErrUnknownFeature, name)
		}
	}
	return nil
}

// normalized returns a copy of t in which numeric columns fitted with scale 0
// (constant columns) get scale 1, so they pass through centered.
func (t *Transformer) normalized() *Transformer {
	out := *t
	out.Numeric = make([]NumericColumn, len(t.Numeric))
	for i, c := range t.Numeric {
		if c.Scale == 0 {
			c.Scale = 1
		}
		out.Numeric[i] = c
	}
	return &out
}

func (t *Transformer) Transform(f models.CarFeatures) []float64 {
	numeric, categorical, flags := f.Numeric(), f.Categorical(), f.Flags()

	out := make([]float64, 0, t.Width())
	for _, c := range t.Numeric {
		out = append(out, (numeric[c.Name]-c.Mean)/c.Scale)
	}
	for _, c := range t.Categorical {
		block := make([]float64, len(c.Categories))
		value := categorical[c.Name]
		for i, cat := range c.Categories {
			if cat == value {
				block[i] = 1
				break
			}
		}
		if c.DropFirst {
			block = block[1:]
		}
		out = append(out, block...)
	}
	for _, name := range t.Passthrough {
		if flags[name] {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}
	return out
}
