package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseThreshold reads the "threshold" query parameter in hours. It defaults
// to 0; negative values are accepted.
func ParseThreshold(c *gin.Context) (float64, error) {
	raw := strings.TrimSpace(c.Query("threshold"))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid threshold %q: must be a number of hours", raw)
	}
	if err := checkThreshold(v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkThreshold(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid threshold %v: must be finite", v)
	}
	return nil
}
