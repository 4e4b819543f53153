package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

type TransactionFilter struct {
	From   string `form:"from"`   // YYYY-MM-DD inclusive
	To     string `form:"to"`     // YYYY-MM-DD inclusive
	Type   string `form:"type"`   // SALE | EXPENSE | empty = all
	Status string `form:"status"` // PAID | PENDING | CANCELLED | empty = all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

// CreateTransactionRequest supplies the net amount and the tax rate; the
// service computes amount_iva and amount_total once, at creation.
type CreateTransactionRequest struct {
	Type      string           `json:"type" validate:"required,oneof=SALE EXPENSE"`
	ContactID *string          `json:"contact_id" validate:"omitempty,uuid"`
	AmountNet decimal.Decimal  `json:"amount_net" validate:"required,gt=0"`
	IVARate   *decimal.Decimal `json:"iva_rate"`
	Status    string           `json:"status" validate:"omitempty,oneof=PAID PENDING CANCELLED"`
	Date      *time.Time       `json:"date"`
	Notes     *string          `json:"notes"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ContactID   *string         `json:"contact_id"`
	ContactName *string         `json:"contact_name,omitempty"`
	AmountNet   decimal.Decimal `json:"amount_net"`
	AmountIVA   decimal.Decimal `json:"amount_iva"`
	AmountTotal decimal.Decimal `json:"amount_total"`
	Status      string          `json:"status"`
	Date        time.Time       `json:"date"`
	Notes       *string         `json:"notes"`
}
