package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/appsembler/figures-backend/internal/logger"
  "github.com/appsembler/figures-backend/internal/types"
)

type CourseOverviewRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.CourseOverview) (*types.CourseOverview, error)
  GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.CourseOverview, error)
  List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.CourseOverview, error)
  GetAllIDs(ctx context.Context, tx *gorm.DB) ([]string, error)
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type courseOverviewRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseOverviewRepo(db *gorm.DB, baseLog *logger.Logger) CourseOverviewRepo {
  repoLog := baseLog.With("repo", "CourseOverviewRepo")
  return &courseOverviewRepo{db: db, log: repoLog}
}

func (r *courseOverviewRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CourseOverview) (*types.CourseOverview, error) {
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

func (r *courseOverviewRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.CourseOverview, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CourseOverview
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *courseOverviewRepo) List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.CourseOverview, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CourseOverview
  if err := transaction.WithContext(ctx).
    Scopes(scopes...).
    Order("id").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *courseOverviewRepo) GetAllIDs(ctx context.Context, tx *gorm.DB) ([]string, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var ids []string
  if err := transaction.WithContext(ctx).
    Model(&types.CourseOverview{}).
    Order("id").
    Pluck("id", &ids).Error; err != nil {
    return nil, err
  }
  return ids, nil
}

func (r *courseOverviewRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.CourseOverview{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
