package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const DefaultThreshold = 0.1

var DefaultThresholds = []float64{0.01, 0.05, 0.10, 0.25, 0.50, 0.75}

type InvalidThresholdError struct {
	Input  string
	Reason string
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold %q: %s", e.Input, e.Reason)
}

func ParseThreshold(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &InvalidThresholdError{Input: s, Reason: "not a number"}
	}
	if err := CheckThreshold(v); err != nil {
		return 0, &InvalidThresholdError{Input: s, Reason: err.Error()}
	}
	return v, nil
}

// ParseThresholds parses a comma-separated list such as ".01,.05,.1".
func ParseThresholds(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	thresholds := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := ParseThreshold(part)
		if err != nil {
			return nil, err
		}
		thresholds = append(thresholds, v)
	}
	return thresholds, nil
}

// CheckThreshold rejects values that cannot be compared against a waste ratio.
func CheckThreshold(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Errorf("must be finite")
	case v < 0:
		return fmt.Errorf("must not be negative")
	}
	return nil
}
