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

type CourseEnrollmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.CourseEnrollment) (*types.CourseEnrollment, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseEnrollment, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.CourseEnrollment) error
  DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
  List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.CourseEnrollment, error)
  GetForCourseAsOf(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.CourseEnrollment, error)
  GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID string) ([]*types.CourseEnrollment, error)
  CountCreatedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type courseEnrollmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) CourseEnrollmentRepo {
  repoLog := baseLog.With("repo", "CourseEnrollmentRepo")
  return &courseEnrollmentRepo{db: db, log: repoLog}
}

func (r *courseEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CourseEnrollment) (*types.CourseEnrollment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil, nil
  }

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return nil, err
  }
  return row, nil
}

func (r *courseEnrollmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseEnrollment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CourseEnrollment
  if err := transaction.WithContext(ctx).
    Preload("User").
    Preload("User.Profile").
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *courseEnrollmentRepo) Update(ctx context.Context, tx *gorm.DB, row *types.CourseEnrollment) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *courseEnrollmentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.CourseEnrollment{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *courseEnrollmentRepo) List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.CourseEnrollment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CourseEnrollment
  if err := transaction.WithContext(ctx).
    Scopes(scopes...).
    Preload("User").
    Preload("User.Profile").
    Order("user_id, course_id").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetForCourseAsOf returns every enrollment created strictly before the
// start of the day after dateFor, i.e. inclusive through end of dateFor.
func (r *courseEnrollmentRepo) GetForCourseAsOf(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.CourseEnrollment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CourseEnrollment
  if courseID == "" {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_id = ? AND created < ?", courseID, utils.NextDay(dateFor)).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetByUserAndCourse returns the user's enrollments for the course ordered
// oldest first, so index 0 is the record days-to-complete math uses.
func (r *courseEnrollmentRepo) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID string) ([]*types.CourseEnrollment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CourseEnrollment
  if userID == uuid.Nil || courseID == "" {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND course_id = ?", userID, courseID).
    Order("created ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *courseEnrollmentRepo) CountCreatedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.CourseEnrollment{}).
    Where("created < ?", cutoff).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
