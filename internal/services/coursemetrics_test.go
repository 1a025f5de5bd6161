package services

import (
	"math"
	"testing"
)

func TestAverageFloats(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{
			name:   "empty_is_zero",
			values: nil,
			want:   0.0,
		},
		{
			name:   "single",
			values: []float64{0.75},
			want:   0.75,
		},
		{
			name:   "mixed_progress",
			values: []float64{0.0, 0.5, 1.0},
			want:   0.5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := averageFloats(tc.values)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("averageFloats(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}

func TestAverageInts(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		want   float64
	}{
		{
			name:   "empty_is_zero",
			values: nil,
			want:   0.0,
		},
		{
			name:   "days_to_complete",
			values: []int{9, 11},
			want:   10.0,
		},
		{
			name:   "fractional_mean",
			values: []int{1, 2},
			want:   1.5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := averageInts(tc.values)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("averageInts(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	cases := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{
			name:   "two_places",
			value:  0.6666666,
			places: 2,
			want:   0.67,
		},
		{
			name:   "rounds_half_up",
			value:  0.125,
			places: 2,
			want:   0.13,
		},
		{
			name:   "already_exact",
			value:  0.5,
			places: 2,
			want:   0.5,
		},
		{
			name:   "zero_places",
			value:  9.6,
			places: 0,
			want:   10,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := roundTo(tc.value, tc.places)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("roundTo(%v, %d) = %v, want %v", tc.value, tc.places, got, tc.want)
			}
		})
	}
}
