package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/appsembler/figures-backend/internal/logger"
  "github.com/appsembler/figures-backend/internal/types"
)

type SiteRepo interface {
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Site, error)
  EnsureDefault(ctx context.Context, tx *gorm.DB, domain, name string) (*types.Site, error)
}

type siteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSiteRepo(db *gorm.DB, baseLog *logger.Logger) SiteRepo {
  repoLog := baseLog.With("repo", "SiteRepo")
  return &siteRepo{db: db, log: repoLog}
}

func (r *siteRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Site, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Site
  if err := transaction.WithContext(ctx).
    Order("domain").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// EnsureDefault creates the site row for the deployment's domain if it does
// not exist yet, so single-tenant installs work with no seeding step.
func (r *siteRepo) EnsureDefault(ctx context.Context, tx *gorm.DB, domain, name string) (*types.Site, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  site := types.Site{Domain: domain, Name: name}
  if err := transaction.WithContext(ctx).
    Where("domain = ?", domain).
    FirstOrCreate(&site).Error; err != nil {
    return nil, err
  }
  return &site, nil
}
