package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/appsembler/figures-backend/internal/logger"
  "github.com/appsembler/figures-backend/internal/types"
)

type PipelineErrorRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.PipelineError) (*types.PipelineError, error)
  List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.PipelineError, error)
}

type pipelineErrorRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPipelineErrorRepo(db *gorm.DB, baseLog *logger.Logger) PipelineErrorRepo {
  repoLog := baseLog.With("repo", "PipelineErrorRepo")
  return &pipelineErrorRepo{db: db, log: repoLog}
}

func (r *pipelineErrorRepo) Create(ctx context.Context, tx *gorm.DB, row *types.PipelineError) (*types.PipelineError, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil, nil
  }
  if row.ErrorType == "" {
    row.ErrorType = types.PipelineErrorUnspecified
  }

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return nil, err
  }
  return row, nil
}

func (r *pipelineErrorRepo) List(ctx context.Context, tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]*types.PipelineError, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.PipelineError
  if err := transaction.WithContext(ctx).
    Scopes(scopes...).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
