package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionSale    TransactionType = "SALE"
	TransactionExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionSale || t == TransactionExpense
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionPaid      TransactionStatus = "PAID"
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPaid, TransactionPending, TransactionCancelled:
		return true
	}
	return false
}

// IVARates are the only tax rates the system accepts.
var IVARates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromFloat(0.105),
	decimal.NewFromFloat(0.21),
}

// ValidIVARate reports whether rate is one of the accepted IVA rates.
func ValidIVARate(rate decimal.Decimal) bool {
	for _, r := range IVARates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// Transaction is a monetary event (sale or expense) scoped to a tenant.
// AmountTotal = AmountNet + AmountIVA, computed once at creation and
// stored; it is never re-derived afterwards.
type Transaction struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID         `gorm:"type:uuid;index;not null"`
	Type        TransactionType   `gorm:"type:varchar(10);not null"`
	ContactID   *uuid.UUID        `gorm:"type:uuid;index"`
	AmountNet   decimal.Decimal   `gorm:"type:decimal(14,2);not null"`
	AmountIVA   decimal.Decimal   `gorm:"type:decimal(14,2);not null;column:amount_iva"`
	AmountTotal decimal.Decimal   `gorm:"type:decimal(14,2);not null"`
	Status      TransactionStatus `gorm:"type:varchar(10);not null;default:'PAID'"`
	Date        time.Time         `gorm:"index;not null"`
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Contact *Contact `gorm:"foreignKey:ContactID"`
}
