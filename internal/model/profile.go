package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the membership role of a profile within its tenant.
// "Admin" | "Empleado" | "Contador"
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleEmployee   Role = "Empleado"
	RoleAccountant Role = "Contador"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleAccountant:
		return true
	}
	return false
}

// Profile binds an authenticated identity to exactly one tenant.
// Its ID equals the auth user's ID — a one-to-one binding, not a
// separately generated key. The tenant reference on this row is the
// scope of every record the identity may read or write.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;index;not null"`
	FullName  string    `gorm:"not null"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'Admin'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Tenant *Tenant `gorm:"foreignKey:TenantID"`
}
