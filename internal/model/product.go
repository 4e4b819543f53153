package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an inventory item scoped to a tenant.
// Stock at or below MinStock flags the product as low inventory.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;index;not null"`
	SKU         *string   `gorm:"column:sku"`
	Name        string    `gorm:"index;not null"`
	Description *string
	// PriceSellNet is the net sale price, without IVA.
	PriceSellNet decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IVARate      decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0.21;column:iva_rate"`
	Stock        int             `gorm:"not null;default:0"`
	MinStock     int             `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock reports whether the product is at or below its minimum threshold.
func (p *Product) LowStock() bool { return p.Stock <= p.MinStock }
