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

type CourseDailyMetricsRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, row *types.CourseDailyMetrics) (*types.CourseDailyMetrics, bool, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseDailyMetrics, error)
  GetByCourseAndDate(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) (*types.CourseDailyMetrics, error)
  Create(ctx context.Context, tx *gorm.DB, row *types.CourseDailyMetrics) (*types.CourseDailyMetrics, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.CourseDailyMetrics) error
  DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
  List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.CourseDailyMetrics, error)
}

type courseDailyMetricsRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseDailyMetricsRepo(db *gorm.DB, baseLog *logger.Logger) CourseDailyMetricsRepo {
  repoLog := baseLog.With("repo", "CourseDailyMetricsRepo")
  return &courseDailyMetricsRepo{db: db, log: repoLog}
}

// Upsert writes the row keyed by (course_id, date_for), overwriting every
// derived field on conflict. Reports whether a new row was created.
// Concurrent upserts for the same key race at the unique constraint;
// last write wins.
func (r *courseDailyMetricsRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.CourseDailyMetrics) (*types.CourseDailyMetrics, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil, false, nil
  }
  row.DateFor = utils.DayOf(row.DateFor)

  existing, err := r.GetByCourseAndDate(ctx, transaction, row.CourseID, row.DateFor)
  if err != nil {
    if err != gorm.ErrRecordNotFound {
      return nil, false, err
    }
    if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
      return nil, false, err
    }
    return row, true, nil
  }

  row.ID = existing.ID
  row.CreatedAt = existing.CreatedAt
  if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
    return nil, false, err
  }
  return row, false, nil
}

func (r *courseDailyMetricsRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseDailyMetrics, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CourseDailyMetrics
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *courseDailyMetricsRepo) GetByCourseAndDate(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) (*types.CourseDailyMetrics, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CourseDailyMetrics
  if err := transaction.WithContext(ctx).
    Where("course_id = ? AND date_for = ?", courseID, utils.DayOf(dateFor)).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *courseDailyMetricsRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CourseDailyMetrics) (*types.CourseDailyMetrics, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil, nil
  }
  row.DateFor = utils.DayOf(row.DateFor)

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return nil, err
  }
  return row, nil
}

func (r *courseDailyMetricsRepo) Update(ctx context.Context, tx *gorm.DB, row *types.CourseDailyMetrics) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  row.DateFor = utils.DayOf(row.DateFor)

  if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *courseDailyMetricsRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.CourseDailyMetrics{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *courseDailyMetricsRepo) List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.CourseDailyMetrics, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CourseDailyMetrics
  if err := transaction.WithContext(ctx).
    Scopes(scopes...).
    Order("date_for, course_id").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
