package model

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a client or supplier record scoped to a tenant.
// The role flags are not mutually exclusive: a contact can be both.
type Contact struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID     uuid.UUID    `gorm:"type:uuid;index;not null"`
	Name         string       `gorm:"index;not null"`
	CUIT         *string      `gorm:"column:cuit"`
	TaxCondition TaxCondition `gorm:"type:varchar(30);not null;default:'Consumidor Final'"`
	Email        *string
	Phone        *string
	IsClient     bool `gorm:"not null;default:true"`
	IsProvider   bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
