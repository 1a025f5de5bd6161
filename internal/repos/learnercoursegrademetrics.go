package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/appsembler/figures-backend/internal/logger"
  "github.com/appsembler/figures-backend/internal/types"
  "github.com/appsembler/figures-backend/internal/utils"
)

type LearnerCourseGradeMetricsRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, row *types.LearnerCourseGradeMetrics) error
  MostRecentForLearnerCourse(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID string, notAfter time.Time) (*types.LearnerCourseGradeMetrics, error)
  List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.LearnerCourseGradeMetrics, error)
}

type learnerCourseGradeMetricsRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLearnerCourseGradeMetricsRepo(db *gorm.DB, baseLog *logger.Logger) LearnerCourseGradeMetricsRepo {
  repoLog := baseLog.With("repo", "LearnerCourseGradeMetricsRepo")
  return &learnerCourseGradeMetricsRepo{db: db, log: repoLog}
}

// Upsert by unique user_id + course_id + date_for.
func (r *learnerCourseGradeMetricsRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.LearnerCourseGradeMetrics) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  row.DateFor = utils.DayOf(row.DateFor)

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND course_id = ? AND date_for = ?", row.UserID, row.CourseID, row.DateFor).
    Assign(row).
    FirstOrCreate(row).Error; err != nil {
    return err
  }
  return nil
}

// MostRecentForLearnerCourse returns the newest cache row at or before
// notAfter, or nil when the learner has no cached grade for the course yet.
func (r *learnerCourseGradeMetricsRepo) MostRecentForLearnerCourse(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID string, notAfter time.Time) (*types.LearnerCourseGradeMetrics, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || courseID == "" {
    return nil, nil
  }

  var result types.LearnerCourseGradeMetrics
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND course_id = ? AND date_for <= ?", userID, courseID, utils.DayOf(notAfter)).
    Order("date_for DESC").
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (r *learnerCourseGradeMetricsRepo) List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.LearnerCourseGradeMetrics, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.LearnerCourseGradeMetrics
  if err := transaction.WithContext(ctx).
    Scopes(scopes...).
    Order("date_for, user_id, course_id").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
