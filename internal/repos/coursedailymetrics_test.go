package repos

import (
	"context"
	"testing"
	"time"

	"github.com/appsembler/figures-backend/internal/repos/testutil"
	"github.com/appsembler/figures-backend/internal/types"
)

func TestCourseDailyMetricsRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCourseDailyMetricsRepo(db, testutil.Logger(t))

	const courseID = "course-v1:edX+DemoX+Demo"
	dateFor := time.Date(2018, 2, 2, 0, 0, 0, 0, time.UTC)

	first := &types.CourseDailyMetrics{
		CourseID:            courseID,
		DateFor:             dateFor,
		EnrollmentCount:     10,
		ActiveLearnersToday: 3,
	}
	saved, created, err := repo.Upsert(ctx, tx, first)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if !created {
		t.Fatalf("first Upsert reported created=false, want true")
	}

	second := &types.CourseDailyMetrics{
		CourseID:             courseID,
		DateFor:              dateFor,
		EnrollmentCount:      12,
		ActiveLearnersToday:  5,
		NumLearnersCompleted: 1,
	}
	resaved, created, err := repo.Upsert(ctx, tx, second)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if created {
		t.Fatalf("second Upsert reported created=true, want false")
	}
	if resaved.ID != saved.ID {
		t.Fatalf("second Upsert produced a new row id %s, want existing %s", resaved.ID, saved.ID)
	}

	var count int64
	if err := tx.WithContext(ctx).
		Model(&types.CourseDailyMetrics{}).
		Where("course_id = ? AND date_for = ?", courseID, dateFor).
		Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows for (course, date) = %d, want exactly 1", count)
	}

	row, err := repo.GetByCourseAndDate(ctx, tx, courseID, dateFor)
	if err != nil {
		t.Fatalf("GetByCourseAndDate: %v", err)
	}
	if row.EnrollmentCount != 12 || row.ActiveLearnersToday != 5 || row.NumLearnersCompleted != 1 {
		t.Fatalf("surviving row carries stale values: %+v", row)
	}
}
