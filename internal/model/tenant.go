package model

import (
	"time"

	"github.com/google/uuid"
)

// TaxCondition is the fiscal category of a tenant or contact.
type TaxCondition string

const (
	TaxMonotributo          TaxCondition = "Monotributo"
	TaxResponsableInscripto TaxCondition = "Responsable Inscripto"
	TaxExento               TaxCondition = "Exento"
	TaxConsumidorFinal      TaxCondition = "Consumidor Final"
)

// Valid reports whether c is one of the known fiscal categories.
func (c TaxCondition) Valid() bool {
	switch c {
	case TaxMonotributo, TaxResponsableInscripto, TaxExento, TaxConsumidorFinal:
		return true
	}
	return false
}

// Tenant represents one customer organization — the unit of data isolation.
// Its ID is immutable once created; every tenant-scoped table references it.
type Tenant struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string       `gorm:"not null"`
	CUIT         string       `gorm:"column:cuit;not null"`
	TaxCondition TaxCondition `gorm:"type:varchar(30);not null;default:'Responsable Inscripto'"`
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
