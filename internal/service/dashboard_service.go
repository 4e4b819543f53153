package service

import (
	"context"
	"encoding/json"
	"time"

	"argenbiz/internal/dto"
	"argenbiz/internal/model"
	"argenbiz/internal/repository"
	"argenbiz/internal/tenant"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DashboardService aggregates the landing-page numbers. The result is
// cached per tenant for a short window: every user of the business
// lands on the same dashboard, and the numbers tolerate a few seconds
// of staleness.
type DashboardService interface {
	Summary(ctx context.Context, sc tenant.Scope) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewDashboardService(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	rdb *redis.Client,
	cacheTTLSeconds int,
) DashboardService {
	return &dashboardService{
		txRepo:      txRepo,
		productRepo: productRepo,
		rdb:         rdb,
		cacheTTL:    time.Duration(cacheTTLSeconds) * time.Second,
		now:         time.Now,
	}
}

func dashboardCacheKey(sc tenant.Scope) string {
	return "dashboard:" + sc.TenantID.String()
}

func (s *dashboardService) Summary(ctx context.Context, sc tenant.Scope) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, dashboardCacheKey(sc)).Bytes(); err == nil {
			var cached dto.DashboardResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.build(ctx, sc)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey(sc), raw, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el dashboard")
			}
		}
	}
	return resp, nil
}

func (s *dashboardService) build(ctx context.Context, sc tenant.Scope) (*dto.DashboardResponse, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	salesToday, err := s.txRepo.SumSalesSince(ctx, sc, startOfDay)
	if err != nil {
		return nil, err
	}
	salesTotal, err := s.txRepo.SumByType(ctx, sc, model.TransactionSale)
	if err != nil {
		return nil, err
	}
	expensesTotal, err := s.txRepo.SumByType(ctx, sc, model.TransactionExpense)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.ListLowStock(ctx, sc)
	if err != nil {
		return nil, err
	}
	series, err := s.txRepo.DailySalesSeries(ctx, sc, startOfDay.AddDate(0, 0, -6))
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItem, 0, len(lowStock))
	for _, p := range lowStock {
		items = append(items, dto.LowStockItem{
			Name:     p.Name,
			Stock:    p.Stock,
			MinStock: p.MinStock,
		})
	}

	// Dense 7-day series: days without sales render as zero, not as
	// gaps.
	byDay := make(map[string]dto.ChartPoint, len(series))
	for _, d := range series {
		key := d.Day.Format("2006-01-02")
		byDay[key] = dto.ChartPoint{Date: key, Sales: d.Total}
	}
	chart := make([]dto.ChartPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		key := startOfDay.AddDate(0, 0, -i).Format("2006-01-02")
		if point, ok := byDay[key]; ok {
			chart = append(chart, point)
		} else {
			chart = append(chart, dto.ChartPoint{Date: key})
		}
	}

	return &dto.DashboardResponse{
		SalesToday: salesToday,
		TotalCash:  salesTotal.Sub(expensesTotal),
		LowStock:   items,
		Chart:      chart,
	}, nil
}
