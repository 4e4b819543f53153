package repository

import (
	"context"
	"time"

	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionFilter struct {
	Type   model.TransactionType
	Status model.TransactionStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// DailySales is one day of the aggregated sales series.
type DailySales struct {
	Day   time.Time       `gorm:"column:day"`
	Total decimal.Decimal `gorm:"column:total"`
}

type TransactionRepository interface {
	Create(ctx context.Context, sc tenant.Scope, t *model.Transaction) error
	FindByID(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, sc tenant.Scope, f TransactionFilter) ([]model.Transaction, int64, error)
	UpdateStatus(ctx context.Context, sc tenant.Scope, id uuid.UUID, status model.TransactionStatus) error
	Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error

	// Dashboard aggregates. All three exclude cancelled rows.
	SumSalesSince(ctx context.Context, sc tenant.Scope, since time.Time) (decimal.Decimal, error)
	SumByType(ctx context.Context, sc tenant.Scope, typ model.TransactionType) (decimal.Decimal, error)
	DailySalesSeries(ctx context.Context, sc tenant.Scope, since time.Time) ([]DailySales, error)
}

type transactionRepo struct{ db *infra.AppDB }

func NewTransactionRepository(db *infra.AppDB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, sc tenant.Scope, t *model.Transaction) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Create(t).Error
	})
}

func (r *transactionRepo) FindByID(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.First(&t, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) List(ctx context.Context, sc tenant.Scope, f TransactionFilter) ([]model.Transaction, int64, error) {
	var (
		txs   []model.Transaction
		total int64
	)
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		q := tx.Model(&model.Transaction{})
		if f.Type != "" {
			q = q.Where("type = ?", f.Type)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.From != nil {
			q = q.Where("date >= ?", *f.From)
		}
		if f.To != nil {
			q = q.Where("date < ?", *f.To)
		}
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order("date desc").Limit(f.Limit).Offset(f.Offset).Find(&txs).Error
	})
	return txs, total, err
}

func (r *transactionRepo) UpdateStatus(ctx context.Context, sc tenant.Scope, id uuid.UUID, status model.TransactionStatus) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		res := tx.Model(&model.Transaction{}).
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

func (r *transactionRepo) Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error {
	return r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		res := tx.Delete(&model.Transaction{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *transactionRepo) SumSalesSince(ctx context.Context, sc tenant.Scope, since time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Model(&model.Transaction{}).
			Select("SUM(amount_total)").
			Where("type = ? AND status <> ? AND date >= ?",
				model.TransactionSale, model.TransactionCancelled, since).
			Scan(&sum).Error
	})
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *transactionRepo) SumByType(ctx context.Context, sc tenant.Scope, typ model.TransactionType) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Model(&model.Transaction{}).
			Select("SUM(amount_total)").
			Where("type = ? AND status <> ?", typ, model.TransactionCancelled).
			Scan(&sum).Error
	})
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *transactionRepo) DailySalesSeries(ctx context.Context, sc tenant.Scope, since time.Time) ([]DailySales, error) {
	var series []DailySales
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Model(&model.Transaction{}).
			Select("date_trunc('day', date) AS day, SUM(amount_total) AS total").
			Where("type = ? AND status <> ? AND date >= ?",
				model.TransactionSale, model.TransactionCancelled, since).
			Group("day").
			Order("day asc").
			Scan(&series).Error
	})
	return series, err
}
