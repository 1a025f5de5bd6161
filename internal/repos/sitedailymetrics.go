package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/appsembler/figures-backend/internal/logger"
  "github.com/appsembler/figures-backend/internal/types"
  "github.com/appsembler/figures-backend/internal/utils"
)

type SiteDailyMetricsRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, row *types.SiteDailyMetrics) (*types.SiteDailyMetrics, bool, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SiteDailyMetrics, error)
  Create(ctx context.Context, tx *gorm.DB, row *types.SiteDailyMetrics) (*types.SiteDailyMetrics, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.SiteDailyMetrics) error
  DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
  List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.SiteDailyMetrics, error)
}

type siteDailyMetricsRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSiteDailyMetricsRepo(db *gorm.DB, baseLog *logger.Logger) SiteDailyMetricsRepo {
  repoLog := baseLog.With("repo", "SiteDailyMetricsRepo")
  return &siteDailyMetricsRepo{db: db, log: repoLog}
}

// Upsert writes the row keyed by (site_id, date_for), overwriting every
// derived field on conflict. Reports whether a new row was created.
func (r *siteDailyMetricsRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SiteDailyMetrics) (*types.SiteDailyMetrics, bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil, false, nil
  }
  row.DateFor = utils.DayOf(row.DateFor)

  var existing types.SiteDailyMetrics
  err := transaction.WithContext(ctx).
    Where("site_id = ? AND date_for = ?", row.SiteID, row.DateFor).
    First(&existing).Error
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

func (r *siteDailyMetricsRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SiteDailyMetrics, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.SiteDailyMetrics
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *siteDailyMetricsRepo) Create(ctx context.Context, tx *gorm.DB, row *types.SiteDailyMetrics) (*types.SiteDailyMetrics, error) {
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

func (r *siteDailyMetricsRepo) Update(ctx context.Context, tx *gorm.DB, row *types.SiteDailyMetrics) error {
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

func (r *siteDailyMetricsRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.SiteDailyMetrics{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *siteDailyMetricsRepo) List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.SiteDailyMetrics, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.SiteDailyMetrics
  if err := transaction.WithContext(ctx).
    Scopes(scopes...).
    Order("date_for DESC, site_id").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
