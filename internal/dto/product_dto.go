package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type ProductFilter struct {
	Name  string `form:"name"`
	SKU   string `form:"sku"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU          *string          `json:"sku"`
	Name         string           `json:"name" validate:"required"`
	Description  *string          `json:"description"`
	PriceSellNet decimal.Decimal  `json:"price_sell_net" validate:"required,min=0"`
	IVARate      *decimal.Decimal `json:"iva_rate"`
	Stock        int              `json:"stock" validate:"min=0"`
	MinStock     int              `json:"min_stock" validate:"min=0"`
}

type UpdateProductRequest struct {
	SKU          *string          `json:"sku"`
	Name         string           `json:"name"`
	Description  *string          `json:"description"`
	PriceSellNet *decimal.Decimal `json:"price_sell_net" validate:"omitempty,min=0"`
	IVARate      *decimal.Decimal `json:"iva_rate"`
	MinStock     *int             `json:"min_stock" validate:"omitempty,min=0"`
}

// AdjustStockRequest applies a signed delta to current stock.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          *string         `json:"sku"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	PriceSellNet decimal.Decimal `json:"price_sell_net"`
	IVARate      decimal.Decimal `json:"iva_rate"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
	LowStock     bool            `json:"low_stock"`
}
