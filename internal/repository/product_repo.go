package repository

import (
	"context"

	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductFilter struct {
	Name   string
	SKU    string
	Limit  int
	Offset int
}

type ProductRepository interface {
	Create(ctx context.Context, sc tenant.Scope, p *model.Product) error
	FindByID(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, sc tenant.Scope, f ProductFilter) ([]model.Product, int64, error)
	ListLowStock(ctx context.Context, sc tenant.Scope) ([]model.Product, error)
	Update(ctx context.Context, sc tenant.Scope, p *model.Product) error
	AdjustStock(ctx context.Context, sc tenant.Scope, id uuid.UUID, delta int) (*model.Product, error)
	Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error
}

type productRepo struct{ db *infra.AppDB }

func NewProductRepository(db *infra.AppDB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, sc tenant.Scope, p *model.Product) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
}

func (r *productRepo) FindByID(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.First(&p, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, sc tenant.Scope, f ProductFilter) ([]model.Product, int64, error) {
	var (
		products []model.Product
		total    int64
	)
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		q := tx.Model(&model.Product{})
		if f.Name != "" {
			q = q.Where("name ILIKE ?", "%"+f.Name+"%")
		}
		if f.SKU != "" {
			q = q.Where("sku = ?", f.SKU)
		}
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order("name asc").Limit(f.Limit).Offset(f.Offset).Find(&products).Error
	})
	return products, total, err
}

func (r *productRepo) ListLowStock(ctx context.Context, sc tenant.Scope) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Where("stock <= min_stock").Order("stock asc").Find(&products).Error
	})
	return products, err
}

func (r *productRepo) Update(ctx context.Context, sc tenant.Scope, p *model.Product) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Save(p).Error
	})
}

// AdjustStock applies the delta atomically and returns the updated row.
// The update and the re-read share the scoped transaction, so the
// returned stock is the value the delta produced.
func (r *productRepo) AdjustStock(ctx context.Context, sc tenant.Scope, id uuid.UUID, delta int) (*model.Product, error) {
	var p model.Product
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		res := tx.Model(&model.Product{}).
			Where("id = ?", id).
			UpdateColumn("stock", gorm.Expr("stock + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&p, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		res := tx.Delete(&model.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
