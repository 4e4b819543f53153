package repository

import (
	"context"

	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/tenant"

	"gorm.io/gorm"
)

// TenantRepository reads and updates the caller's own tenant. The
// policies make any other tenant invisible, so the queries carry no
// explicit tenant filter.
type TenantRepository interface {
	FindOwn(ctx context.Context, sc tenant.Scope) (*model.Tenant, error)
	Update(ctx context.Context, sc tenant.Scope, t *model.Tenant) error
}

type tenantRepo struct{ db *infra.AppDB }

func NewTenantRepository(db *infra.AppDB) TenantRepository { return &tenantRepo{db: db} }

func (r *tenantRepo) FindOwn(ctx context.Context, sc tenant.Scope) (*model.Tenant, error) {
	var t model.Tenant
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.First(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepo) Update(ctx context.Context, sc tenant.Scope, t *model.Tenant) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Save(t).Error
	})
}
