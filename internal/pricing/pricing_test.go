package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMetrics(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		duration float64
		wantErr  bool
	}{
		{"valid", 10, 15, false},
		{"fractional", 0.5, 0.1, false},
		{"zero distance", 0, 15, true},
		{"zero duration", 10, 0, true},
		{"negative distance", -1, 15, true},
		{"negative duration", 10, -3, true},
		{"nan distance", math.NaN(), 15, true},
		{"nan duration", 10, math.NaN(), true},
		{"inf distance", math.Inf(1), 15, true},
		{"negative inf duration", 10, math.Inf(-1), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ValidateMetrics(tc.distance, tc.duration)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidMetrics)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.distance, m.DistanceKm)
			assert.Equal(t, tc.duration, m.DurationMinutes)
		})
	}
}

func TestAmount_KnownFares(t *testing.T) {
	fare := Fare{Flat: 100, PerKm: 12, PerMinute: 2, Minimum: 500}

	// 100 + 120 + 30 = 250, floored to the 500 minimum.
	got, err := Amount(fare, TripMetrics{DistanceKm: 10, DurationMinutes: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(500), got)

	// 100 + 600 + 120 = 820, above the floor.
	got, err = Amount(fare, TripMetrics{DistanceKm: 50, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, int64(820), got)
}

func TestAmount_Rounding(t *testing.T) {
	fare := Fare{Flat: 0, PerKm: 1, PerMinute: 0, Minimum: 0}

	got, err := Amount(fare, TripMetrics{DistanceKm: 10.4, DurationMinutes: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)

	got, err = Amount(fare, TripMetrics{DistanceKm: 10.5, DurationMinutes: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got)
}

func TestAmount_NeverBelowMinimum(t *testing.T) {
	fare := Fare{Flat: 5, PerKm: 2, PerMinute: 1, Minimum: 300}

	for _, m := range []TripMetrics{
		{0.1, 0.1},
		{1, 1},
		{25, 40},
		{100, 120},
	} {
		got, err := Amount(fare, m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, int64(math.Round(fare.Minimum)), "metrics %+v", m)
	}
}

func TestAmount_Monotonic(t *testing.T) {
	fare := Fare{Flat: 40, PerKm: 9, PerMinute: 1.5, Minimum: 120}

	var prev int64
	for d := 1.0; d <= 200; d += 7.3 {
		got, err := Amount(fare, TripMetrics{DistanceKm: d, DurationMinutes: 30})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "distance %v", d)
		prev = got
	}

	prev = 0
	for dur := 1.0; dur <= 600; dur += 11.9 {
		got, err := Amount(fare, TripMetrics{DistanceKm: 12, DurationMinutes: dur})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "duration %v", dur)
		prev = got
	}
}

func TestAmount_Deterministic(t *testing.T) {
	fare := Fare{Flat: 100, PerKm: 12.37, PerMinute: 2.11, Minimum: 500}
	m := TripMetrics{DistanceKm: 33.33, DurationMinutes: 47.2}

	first, err := Amount(fare, m)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		got, err := Amount(fare, m)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestAmount_RevalidatesMetrics(t *testing.T) {
	fare := Fare{Flat: 100, PerKm: 12, PerMinute: 2, Minimum: 500}

	_, err := Amount(fare, TripMetrics{DistanceKm: -4, DurationMinutes: 10})
	assert.ErrorIs(t, err, ErrInvalidMetrics)

	_, err = Amount(fare, TripMetrics{DistanceKm: 4, DurationMinutes: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidMetrics)
}
