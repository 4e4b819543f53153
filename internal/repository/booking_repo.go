package repository

import (
	"context"
	"time"

	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingFilter struct {
	Status model.BookingStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type BookingRepository interface {
	Create(ctx context.Context, sc tenant.Scope, b *model.Booking) error
	FindByID(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context, sc tenant.Scope, f BookingFilter) ([]model.Booking, int64, error)
	UpdateStatus(ctx context.Context, sc tenant.Scope, id uuid.UUID, status model.BookingStatus) error
	Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error
}

type bookingRepo struct{ db *infra.AppDB }

func NewBookingRepository(db *infra.AppDB) BookingRepository { return &bookingRepo{db: db} }

func (r *bookingRepo) Create(ctx context.Context, sc tenant.Scope, b *model.Booking) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Create(b).Error
	})
}

func (r *bookingRepo) FindByID(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Preload("Contact").First(&b, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) List(ctx context.Context, sc tenant.Scope, f BookingFilter) ([]model.Booking, int64, error) {
	var (
		bookings []model.Booking
		total    int64
	)
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		q := tx.Model(&model.Booking{})
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.From != nil {
			q = q.Where("start_time >= ?", *f.From)
		}
		if f.To != nil {
			q = q.Where("start_time < ?", *f.To)
		}
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Preload("Contact").Order("start_time asc").Limit(f.Limit).Offset(f.Offset).Find(&bookings).Error
	})
	return bookings, total, err
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, sc tenant.Scope, id uuid.UUID, status model.BookingStatus) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ?", id).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *bookingRepo) Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		res := tx.Delete(&model.Booking{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
