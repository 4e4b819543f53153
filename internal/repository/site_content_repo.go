package repository

import (
	"context"
	"errors"

	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteContentRepository stores keyed content blocks. Reads are public
// (the SELECT policy is unconditional), so Get works under the
// anonymous scope. A tenant-specific row shadows the global row for
// the same key.
type SiteContentRepository interface {
	Get(ctx context.Context, sc tenant.Scope, tenantID *uuid.UUID, key string) (*model.SiteContent, error)
	ListForTenant(ctx context.Context, sc tenant.Scope, tenantID uuid.UUID) ([]model.SiteContent, error)
	Upsert(ctx context.Context, sc tenant.Scope, content *model.SiteContent) error
	Delete(ctx context.Context, sc tenant.Scope, tenantID uuid.UUID, key string) error
}

type siteContentRepo struct{ db *infra.AppDB }

func NewSiteContentRepository(db *infra.AppDB) SiteContentRepository {
	return &siteContentRepo{db: db}
}

func (r *siteContentRepo) Get(ctx context.Context, sc tenant.Scope, tenantID *uuid.UUID, key string) (*model.SiteContent, error) {
	var content model.SiteContent
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		if tenantID != nil {
			err := tx.Where("tenant_id = ? AND key = ?", *tenantID, key).First(&content).Error
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return tx.Where("tenant_id IS NULL AND key = ?", key).First(&content).Error
	})
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *siteContentRepo) ListForTenant(ctx context.Context, sc tenant.Scope, tenantID uuid.UUID) ([]model.SiteContent, error) {
	var contents []model.SiteContent
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Where("tenant_id = ?", tenantID).Order("key asc").Find(&contents).Error
	})
	return contents, err
}

func (r *siteContentRepo) Upsert(ctx context.Context, sc tenant.Scope, content *model.SiteContent) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).Create(content).Error
	})
}

func (r *siteContentRepo) Delete(ctx context.Context, sc tenant.Scope, tenantID uuid.UUID, key string) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		res := tx.Where("tenant_id = ? AND key = ?", tenantID, key).Delete(&model.SiteContent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
