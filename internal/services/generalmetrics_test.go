package services

import "testing"

func TestDecodeCachedMetrics(t *testing.T) {
	t.Run("valid_payload", func(t *testing.T) {
		raw := `{"monthly_active_users":12,"total_site_users":40,"total_site_courses":3,"total_course_enrollments":55,"total_course_completions":7}`
		got, err := decodeCachedMetrics(raw)
		if err != nil {
			t.Fatalf("decodeCachedMetrics: %v", err)
		}
		if got.MonthlyActiveUsers != 12 || got.TotalCourseCompletions != 7 {
			t.Fatalf("decoded %+v, want counts carried through", got)
		}
	})

	t.Run("corrupt_payload_reports_error", func(t *testing.T) {
		got, err := decodeCachedMetrics("{not json")
		if err == nil {
			t.Fatalf("expected decode error, got %+v", got)
		}
		if got != nil {
			t.Fatalf("corrupt payload should not yield metrics, got %+v", got)
		}
	})
}
