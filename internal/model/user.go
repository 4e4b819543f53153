package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an authentication identity (email + password hash).
// The table lives outside the row-level isolation model: only the
// elevated database handle touches it, never the per-request one.
// A Profile with the same ID is created lazily on first session.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
