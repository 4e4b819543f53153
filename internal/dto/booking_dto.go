package dto

import "time"

// ─── Filter / List ──────────────────────────────────────────────────────────

type BookingFilter struct {
	From   string `form:"from"`   // YYYY-MM-DD inclusive
	Status string `form:"status"` // CONFIRMED | PENDING | CANCELLED | empty = all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type BookingListResponse struct {
	Data  []BookingResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

// CreateBookingRequest schedules an appointment. The end is given either
// explicitly or as a duration in minutes from the start; either way the
// service enforces end > start.
type CreateBookingRequest struct {
	ContactID       string     `json:"contact_id" validate:"required,uuid"`
	ServiceName     string     `json:"service_name" validate:"required"`
	StartTime       time.Time  `json:"start_time" validate:"required"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes" validate:"omitempty,min=1"`
	Notes           *string    `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED PENDING CANCELLED"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type BookingResponse struct {
	ID          string    `json:"id"`
	ContactID   string    `json:"contact_id"`
	ContactName *string   `json:"contact_name,omitempty"`
	ServiceName string    `json:"service_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
}
