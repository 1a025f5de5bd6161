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

type StudentModuleRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.StudentModule) (*types.StudentModule, error)
  GetForCourseOnDay(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.StudentModule, error)
  CountDistinctUsersOnDay(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error)
  CountDistinctUsersThrough(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error)
  CountDistinctUsersBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) (int64, error)
  CountDistinctModulesForCourse(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) (int64, error)
  CountDistinctModulesForUser(ctx context.Context, tx *gorm.DB, courseID string, userID uuid.UUID, dateFor time.Time) (int64, error)
}

type studentModuleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewStudentModuleRepo(db *gorm.DB, baseLog *logger.Logger) StudentModuleRepo {
  repoLog := baseLog.With("repo", "StudentModuleRepo")
  return &studentModuleRepo{db: db, log: repoLog}
}

func (r *studentModuleRepo) Create(ctx context.Context, tx *gorm.DB, row *types.StudentModule) (*types.StudentModule, error) {
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

// GetForCourseOnDay returns courseware-interaction records modified on the
// exact reference day.
func (r *studentModuleRepo) GetForCourseOnDay(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.StudentModule, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.StudentModule
  if courseID == "" {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_id = ? AND modified >= ? AND modified < ?", courseID, utils.DayOf(dateFor), utils.NextDay(dateFor)).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *studentModuleRepo) CountDistinctUsersOnDay(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.StudentModule{}).
    Where("modified >= ? AND modified < ?", utils.DayOf(dateFor), utils.NextDay(dateFor)).
    Distinct("user_id").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *studentModuleRepo) CountDistinctUsersBetween(ctx context.Context, tx *gorm.DB, start, end time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.StudentModule{}).
    Where("modified >= ? AND modified < ?", utils.DayOf(start), utils.NextDay(end)).
    Distinct("user_id").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

// CountDistinctModulesForCourse counts the graded modules known for a
// course as of the reference date. Used as the sections-possible figure
// when no grade cache row exists.
func (r *studentModuleRepo) CountDistinctModulesForCourse(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.StudentModule{}).
    Where("course_id = ? AND created < ?", courseID, utils.NextDay(dateFor)).
    Distinct("module_id").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *studentModuleRepo) CountDistinctModulesForUser(ctx context.Context, tx *gorm.DB, courseID string, userID uuid.UUID, dateFor time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.StudentModule{}).
    Where("course_id = ? AND user_id = ? AND modified < ?", courseID, userID, utils.NextDay(dateFor)).
    Distinct("module_id").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *studentModuleRepo) CountDistinctUsersThrough(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.StudentModule{}).
    Where("modified < ?", utils.NextDay(dateFor)).
    Distinct("user_id").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
