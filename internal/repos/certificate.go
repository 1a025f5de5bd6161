package repos

import (
  "context"
  "time"
  "gorm.io/gorm"
  "github.com/appsembler/figures-backend/internal/logger"
  "github.com/appsembler/figures-backend/internal/types"
  "github.com/appsembler/figures-backend/internal/utils"
)

type GeneratedCertificateRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.GeneratedCertificate) (*types.GeneratedCertificate, error)
  GetForCourseThrough(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.GeneratedCertificate, error)
  CountThrough(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error)
}

type generatedCertificateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGeneratedCertificateRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedCertificateRepo {
  repoLog := baseLog.With("repo", "GeneratedCertificateRepo")
  return &generatedCertificateRepo{db: db, log: repoLog}
}

func (r *generatedCertificateRepo) Create(ctx context.Context, tx *gorm.DB, row *types.GeneratedCertificate) (*types.GeneratedCertificate, error) {
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

// GetForCourseThrough returns certificates generated on or before the
// reference date.
func (r *generatedCertificateRepo) GetForCourseThrough(ctx context.Context, tx *gorm.DB, courseID string, dateFor time.Time) ([]*types.GeneratedCertificate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.GeneratedCertificate
  if courseID == "" {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_id = ? AND created_date < ?", courseID, utils.NextDay(dateFor)).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *generatedCertificateRepo) CountThrough(ctx context.Context, tx *gorm.DB, dateFor time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.GeneratedCertificate{}).
    Where("created_date < ?", utils.NextDay(dateFor)).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
