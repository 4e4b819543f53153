package repository

import (
	"context"

	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactFilter narrows a listing to one of the contact roles.
type ContactFilter struct {
	Role   string // "client", "provider" or "all"
	Name   string
	Limit  int
	Offset int
}

type ContactRepository interface {
	Create(ctx context.Context, sc tenant.Scope, c *model.Contact) error
	FindByID(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*model.Contact, error)
	List(ctx context.Context, sc tenant.Scope, f ContactFilter) ([]model.Contact, int64, error)
	Update(ctx context.Context, sc tenant.Scope, c *model.Contact) error
	Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error
}

type contactRepo struct{ db *infra.AppDB }

func NewContactRepository(db *infra.AppDB) ContactRepository { return &contactRepo{db: db} }

func (r *contactRepo) Create(ctx context.Context, sc tenant.Scope, c *model.Contact) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Create(c).Error
	})
}

func (r *contactRepo) FindByID(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*model.Contact, error) {
	var c model.Contact
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.First(&c, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepo) List(ctx context.Context, sc tenant.Scope, f ContactFilter) ([]model.Contact, int64, error) {
	var (
		contacts []model.Contact
		total    int64
	)
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		q := tx.Model(&model.Contact{})
		switch f.Role {
		case "client":
			q = q.Where("is_client = true")
		case "provider":
			q = q.Where("is_provider = true")
		}
		if f.Name != "" {
			q = q.Where("name ILIKE ?", "%"+f.Name+"%")
		}
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order("name asc").Limit(f.Limit).Offset(f.Offset).Find(&contacts).Error
	})
	return contacts, total, err
}

func (r *contactRepo) Update(ctx context.Context, sc tenant.Scope, c *model.Contact) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Save(c).Error
	})
}

func (r *contactRepo) Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		res := tx.Delete(&model.Contact{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
