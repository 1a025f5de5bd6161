package types

import (
	"math"
	"testing"
)

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		name string
		row  LearnerCourseGradeMetrics
		want float64
	}{
		{
			name: "half_done",
			row:  LearnerCourseGradeMetrics{SectionsWorked: 5, SectionsPossible: 10},
			want: 0.5,
		},
		{
			name: "complete",
			row:  LearnerCourseGradeMetrics{SectionsWorked: 8, SectionsPossible: 8},
			want: 1.0,
		},
		{
			name: "not_started",
			row:  LearnerCourseGradeMetrics{SectionsWorked: 0, SectionsPossible: 12},
			want: 0.0,
		},
		{
			name: "no_graded_sections",
			row:  LearnerCourseGradeMetrics{SectionsWorked: 0, SectionsPossible: 0},
			want: 0.0,
		},
		{
			name: "thirds",
			row:  LearnerCourseGradeMetrics{SectionsWorked: 1, SectionsPossible: 3},
			want: 1.0 / 3.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.row.ProgressPercent()
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("ProgressPercent() = %v, want %v", got, tc.want)
			}
		})
	}
}
