package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the confirmation state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingPending   BookingStatus = "PENDING"
	BookingCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingPending, BookingCancelled:
		return true
	}
	return false
}

// Booking is a scheduled service appointment for a tenant's contact.
// EndTime is strictly after StartTime.
type Booking struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID     `gorm:"type:uuid;index;not null"`
	ContactID   uuid.UUID     `gorm:"type:uuid;index;not null"`
	ServiceName string        `gorm:"not null"`
	StartTime   time.Time     `gorm:"index;not null"`
	EndTime     time.Time     `gorm:"not null"`
	Status      BookingStatus `gorm:"type:varchar(10);not null;default:'PENDING'"`
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Contact *Contact `gorm:"foreignKey:ContactID"`
}
