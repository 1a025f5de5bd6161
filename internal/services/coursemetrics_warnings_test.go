package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/appsembler/figures-backend/internal/types"
)

// fakeEnrollmentRepo serves canned enrollment rows per user.
type fakeEnrollmentRepo struct {
	byUser map[uuid.UUID][]*types.CourseEnrollment
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CourseEnrollment) (*types.CourseEnrollment, error) {
	return row, nil
}

func (f *fakeEnrollmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseEnrollment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEnrollmentRepo) Update(ctx context.Context, tx *gorm.DB, row *types.CourseEnrollment) error {
	return nil
}

func (f *fakeEnrollmentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

func (f *fakeEnrollmentRepo) List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.CourseEnrollment, error) {
	return nil, nil
}

func (f *fakeEnrollmentRepo) GetForCourseAsOf(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.CourseEnrollment, error) {
	return nil, nil
}

func (f *fakeEnrollmentRepo) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID string) ([]*types.CourseEnrollment, error) {
	return f.byUser[userID], nil
}

func (f *fakeEnrollmentRepo) CountCreatedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	return 0, nil
}

func TestDaysToComplete(t *testing.T) {
	const courseID = "course-v1:edX+DemoX+Demo"
	enrolled := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	completed := time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)

	singleUser := uuid.New()
	doubleUser := uuid.New()
	orphanUser := uuid.New()

	repo := &fakeEnrollmentRepo{byUser: map[uuid.UUID][]*types.CourseEnrollment{
		singleUser: {
			{UserID: singleUser, CourseID: courseID, Created: enrolled},
		},
		doubleUser: {
			{UserID: doubleUser, CourseID: courseID, Created: enrolled},
			{UserID: doubleUser, CourseID: courseID, Created: enrolled.AddDate(0, 0, 3)},
		},
	}}
	cms := &courseMetricsService{enrollmentRepo: repo}

	t.Run("single_enrollment", func(t *testing.T) {
		days, warnings, err := cms.daysToComplete(context.Background(), courseID, []*types.GeneratedCertificate{
			{UserID: singleUser, CourseID: courseID, CreatedDate: completed},
		})
		if err != nil {
			t.Fatalf("daysToComplete: %v", err)
		}
		if len(warnings) != 0 {
			t.Fatalf("got %d warnings, want 0", len(warnings))
		}
		if len(days) != 1 || days[0] != 9 {
			t.Fatalf("days = %v, want [9]", days)
		}
	})

	t.Run("multiple_enrollments_warn_and_use_earliest", func(t *testing.T) {
		days, warnings, err := cms.daysToComplete(context.Background(), courseID, []*types.GeneratedCertificate{
			{UserID: doubleUser, CourseID: courseID, CreatedDate: completed},
		})
		if err != nil {
			t.Fatalf("daysToComplete: %v", err)
		}
		if len(warnings) != 1 {
			t.Fatalf("got %d warnings, want 1", len(warnings))
		}
		if warnings[0].UserID != doubleUser || warnings[0].CourseID != courseID {
			t.Fatalf("warning identifies wrong record: %+v", warnings[0])
		}
		if len(days) != 1 || days[0] != 9 {
			t.Fatalf("days = %v, want [9] from earliest enrollment", days)
		}
	})

	t.Run("certificate_without_enrollment", func(t *testing.T) {
		days, warnings, err := cms.daysToComplete(context.Background(), courseID, []*types.GeneratedCertificate{
			{UserID: orphanUser, CourseID: courseID, CreatedDate: completed},
		})
		if err != nil {
			t.Fatalf("daysToComplete: %v", err)
		}
		if len(warnings) != 1 {
			t.Fatalf("got %d warnings, want 1", len(warnings))
		}
		if len(days) != 0 {
			t.Fatalf("days = %v, want empty for skipped certificate", days)
		}
	})

	t.Run("no_certificates", func(t *testing.T) {
		days, warnings, err := cms.daysToComplete(context.Background(), courseID, nil)
		if err != nil {
			t.Fatalf("daysToComplete: %v", err)
		}
		if len(days) != 0 || len(warnings) != 0 {
			t.Fatalf("expected empty results, got days=%v warnings=%v", days, warnings)
		}
	})
}
