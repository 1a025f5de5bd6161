package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/types"
	"github.com/appsembler/figures-backend/internal/utils"
)

// fakeGradeCacheRepo keeps cache rows in memory, newest-first per lookup.
type fakeGradeCacheRepo struct {
	rows []*types.LearnerCourseGradeMetrics
}

func (f *fakeGradeCacheRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.LearnerCourseGradeMetrics) error {
	day := utils.DayOf(row.DateFor)
	for i, existing := range f.rows {
		if existing.UserID == row.UserID && existing.CourseID == row.CourseID && existing.DateFor.Equal(day) {
			f.rows[i] = row
			return nil
		}
	}
	stored := *row
	stored.DateFor = day
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeGradeCacheRepo) MostRecentForLearnerCourse(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID string, notAfter time.Time) (*types.LearnerCourseGradeMetrics, error) {
	cutoff := utils.DayOf(notAfter)
	var best *types.LearnerCourseGradeMetrics
	for _, row := range f.rows {
		if row.UserID != userID || row.CourseID != courseID || row.DateFor.After(cutoff) {
			continue
		}
		if best == nil || row.DateFor.After(best.DateFor) {
			best = row
		}
	}
	return best, nil
}

func (f *fakeGradeCacheRepo) List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.LearnerCourseGradeMetrics, error) {
	return f.rows, nil
}

// fakeModuleRepo serves per-day distinct-module counts and records how
// often the learner count is computed.
type fakeModuleRepo struct {
	courseModules int64
	workedByDay   map[time.Time]int64
	computeCalls  int
}

func (f *fakeModuleRepo) Create(ctx context.Context, tx *gorm.DB, row *types.StudentModule) (*types.StudentModule, error) {
	return row, nil
}

func (f *fakeModuleRepo) GetForCourseOnDay(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.StudentModule, error) {
	return nil, nil
}

func (f *fakeModuleRepo) CountDistinctUsersOnDay(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeModuleRepo) CountDistinctUsersThrough(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeModuleRepo) CountDistinctUsersBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeModuleRepo) CountDistinctModulesForCourse(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) (int64, error) {
	return f.courseModules, nil
}

func (f *fakeModuleRepo) CountDistinctModulesForUser(ctx context.Context, tx *gorm.DB, courseID string, userID uuid.UUID, dateFor time.Time) (int64, error) {
	f.computeCalls++
	return f.workedByDay[utils.DayOf(dateFor)], nil
}

type fakeCertificateRepo struct{}

func (f *fakeCertificateRepo) Create(ctx context.Context, tx *gorm.DB, row *types.GeneratedCertificate) (*types.GeneratedCertificate, error) {
	return row, nil
}

func (f *fakeCertificateRepo) GetForCourseThrough(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.GeneratedCertificate, error) {
	return nil, nil
}

func (f *fakeCertificateRepo) CountThrough(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error) {
	return 0, nil
}

func TestCourseProgressRecomputesPerDay(t *testing.T) {
	const courseID = "course-v1:edX+DemoX+Demo"
	userID := uuid.New()
	day1 := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC)

	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	cache := &fakeGradeCacheRepo{}
	modules := &fakeModuleRepo{
		courseModules: 10,
		workedByDay: map[time.Time]int64{
			day1: 1,
			day2: 5,
		},
	}
	gs := &gradesService{
		log:             log.With("service", "GradesService"),
		gradeCacheRepo:  cache,
		moduleRepo:      modules,
		certificateRepo: &fakeCertificateRepo{},
	}
	ctx := context.Background()

	p1, err := gs.CourseProgress(ctx, userID, courseID, day1)
	if err != nil {
		t.Fatalf("CourseProgress(day1): %v", err)
	}
	if math.Abs(p1.ProgressPercent()-0.1) > 1e-9 {
		t.Fatalf("day-1 progress = %v, want 0.1", p1.ProgressPercent())
	}

	p2, err := gs.CourseProgress(ctx, userID, courseID, day2)
	if err != nil {
		t.Fatalf("CourseProgress(day2): %v", err)
	}
	if math.Abs(p2.ProgressPercent()-0.5) > 1e-9 {
		t.Fatalf("day-2 progress = %v, want 0.5 computed fresh, not the day-1 cached value", p2.ProgressPercent())
	}

	if len(cache.rows) != 2 {
		t.Fatalf("cache rows = %d, want one per day", len(cache.rows))
	}

	// A repeat read for a day already cached must hit the cache, not
	// recompute.
	calls := modules.computeCalls
	p2again, err := gs.CourseProgress(ctx, userID, courseID, day2)
	if err != nil {
		t.Fatalf("CourseProgress(day2 repeat): %v", err)
	}
	if math.Abs(p2again.ProgressPercent()-0.5) > 1e-9 {
		t.Fatalf("repeat day-2 progress = %v, want 0.5", p2again.ProgressPercent())
	}
	if modules.computeCalls != calls {
		t.Fatalf("repeat same-day read recomputed (%d extra calls), want cache hit", modules.computeCalls-calls)
	}
}
