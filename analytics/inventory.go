package analytics

import (
	"fmt"
	"math"
)

// Scope selects the table an inventory loss is measured on.
type Scope string

const (
	ScopeLate    Scope = "late"
	ScopeTrimmed Scope = "trimmed"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeLate, ScopeTrimmed:
		return Scope(s), nil
	case "":
		return ScopeLate, nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

// InventoryLoss counts the rentals a minimum delay of threshold hours would
// block. A NaN delta means no previous rental and is always kept.
func InventoryLoss(deltas []float64, threshold float64) (Estimate, error) {
	if len(deltas) == 0 {
		return Estimate{}, ErrEmptySubset
	}
	lost := 0
	for _, delta := range deltas {
		if math.IsNaN(delta) {
			continue
		}
		if !(delta >= threshold) {
			lost++
		}
	}
	return newEstimate(lost, len(deltas)), nil
}

func (d *Dataset) InventoryLoss(threshold float64, scope Scope) (Estimate, error) {
	switch scope {
	case ScopeLate:
		return InventoryLoss(d.lateDelta, threshold)
	case ScopeTrimmed:
		return InventoryLoss(d.trimmedDelta, threshold)
	}
	return Estimate{}, fmt.Errorf("unknown scope %q", scope)
}
