package utils

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayOf(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midday_truncates",
			in:   time.Date(2018, 2, 2, 13, 45, 59, 0, time.UTC),
			want: day(2018, 2, 2),
		},
		{
			name: "midnight_unchanged",
			in:   day(2018, 2, 2),
			want: day(2018, 2, 2),
		},
		{
			name: "non_utc_converts_first",
			in:   time.Date(2018, 2, 2, 23, 30, 0, 0, time.FixedZone("minus5", -5*3600)),
			want: day(2018, 2, 3),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DayOf(tc.in)
			if !got.Equal(tc.want) {
				t.Fatalf("DayOf(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNextDayPrevDay(t *testing.T) {
	in := time.Date(2018, 2, 28, 18, 0, 0, 0, time.UTC)
	if got := NextDay(in); !got.Equal(day(2018, 3, 1)) {
		t.Fatalf("NextDay(%v) = %v, want 2018-03-01", in, got)
	}
	if got := PrevDay(in); !got.Equal(day(2018, 2, 27)) {
		t.Fatalf("PrevDay(%v) = %v, want 2018-02-27", in, got)
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "enrollment_to_completion",
			start: day(2018, 1, 1),
			end:   day(2018, 1, 10),
			want:  9,
		},
		{
			name:  "same_day",
			start: day(2018, 1, 1),
			end:   day(2018, 1, 1),
			want:  0,
		},
		{
			name:  "time_of_day_ignored",
			start: time.Date(2018, 1, 1, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2018, 1, 2, 0, 1, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "negative_when_reversed",
			start: day(2018, 1, 10),
			end:   day(2018, 1, 1),
			want:  -9,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DaysBetween(tc.start, tc.end)
			if got != tc.want {
				t.Fatalf("DaysBetween(%v, %v) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2020, 6, 15, 1, 0, 0, 0, time.UTC)
	b := time.Date(2020, 6, 15, 23, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatalf("SameDay(%v, %v) = false, want true", a, b)
	}
	if SameDay(a, NextDay(a)) {
		t.Fatalf("SameDay across days reported true")
	}
}
