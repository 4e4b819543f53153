package dto

import "github.com/shopspring/decimal"

// LowStockItem is one product at or below its minimum threshold.
type LowStockItem struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

// ChartPoint is one day of the sales series.
type ChartPoint struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Sales decimal.Decimal `json:"sales"`
}

// DashboardResponse aggregates the numbers the dashboard renders:
// today's sales, the overall cash position (sales minus expenses),
// the low-stock list, and the last-7-days sales series.
type DashboardResponse struct {
	SalesToday decimal.Decimal `json:"sales_today"`
	TotalCash  decimal.Decimal `json:"total_cash"`
	LowStock   []LowStockItem  `json:"low_stock"`
	Chart      []ChartPoint    `json:"chart"`
}
