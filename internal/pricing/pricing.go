// Package pricing computes booking amounts from a vehicle rate card and
// caller-supplied trip metrics. Everything here is pure: identical inputs
// always produce identical outputs.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMetrics wraps every metric validation failure so callers can
// classify them with errors.Is.
var ErrInvalidMetrics = errors.New("invalid trip metrics")

// TripMetrics is a validated distance/duration pair. Units are kilometers
// and minutes; no conversion is performed anywhere.
type TripMetrics struct {
	DistanceKm      float64
	DurationMinutes float64
}

// Fare holds the monetary parameters of a rate card. Minimum is a floor
// on the total, not an additive component.
type Fare struct {
	Flat      float64
	PerKm     float64
	PerMinute float64
	Minimum   float64
}

// ValidateMetrics rejects non-finite or non-positive distance/duration.
func ValidateMetrics(distanceKm, durationMinutes float64) (TripMetrics, error) {
	if !isFinite(distanceKm) || distanceKm <= 0 {
		return TripMetrics{}, fmt.Errorf("%w: distanceKm must be a positive number", ErrInvalidMetrics)
	}

	if !isFinite(durationMinutes) || durationMinutes <= 0 {
		return TripMetrics{}, fmt.Errorf("%w: durationMinutes must be a positive number", ErrInvalidMetrics)
	}

	return TripMetrics{DistanceKm: distanceKm, DurationMinutes: durationMinutes}, nil
}

// Amount computes the integer booking amount for one trip. The metrics
// are re-validated so the function is safe to call standalone. The total
// is floored at fare.Minimum and rounded half away from zero, which for
// non-negative fares matches round-half-up.
func Amount(fare Fare, m TripMetrics) (int64, error) {
	m, err := ValidateMetrics(m.DistanceKm, m.DurationMinutes)
	if err != nil {
		return 0, err
	}

	subtotal := fare.Flat + fare.PerKm*m.DistanceKm + fare.PerMinute*m.DurationMinutes
	total := math.Max(subtotal, fare.Minimum)

	return int64(math.Round(total)), nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
