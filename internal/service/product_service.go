package service

import (
	"context"
	"errors"

	"argenbiz/internal/apierror"
	"argenbiz/internal/dto"
	"argenbiz/internal/model"
	"argenbiz/internal/repository"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, sc tenant.Scope, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, sc tenant.Scope, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, sc tenant.Scope, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	AdjustStock(ctx context.Context, sc tenant.Scope, id uuid.UUID, delta int) (*dto.ProductResponse, error)
	Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, sc tenant.Scope, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	rate := decimal.NewFromFloat(0.21)
	if req.IVARate != nil {
		rate = *req.IVARate
	}
	if !model.ValidIVARate(rate) {
		return nil, apierror.Invalid("alicuota de IVA invalida: %s", rate)
	}
	p := &model.Product{
		TenantID:     sc.TenantID,
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		PriceSellNet: req.PriceSellNet,
		IVARate:      rate,
		Stock:        req.Stock,
		MinStock:     req.MinStock,
	}
	if err := s.repo.Create(ctx, sc, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, sc tenant.Scope, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, sc, repository.ProductFilter{
		Name:   filter.Name,
		SKU:    filter.SKU,
		Limit:  filter.Limit,
		Offset: (filter.Page - 1) * filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, sc tenant.Scope, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if req.SKU != nil {
		p.SKU = req.SKU
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.PriceSellNet != nil {
		p.PriceSellNet = *req.PriceSellNet
	}
	if req.IVARate != nil {
		if !model.ValidIVARate(*req.IVARate) {
			return nil, apierror.Invalid("alicuota de IVA invalida: %s", *req.IVARate)
		}
		p.IVARate = *req.IVARate
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if err := s.repo.Update(ctx, sc, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// AdjustStock applies a signed delta. Stock updates never go through
// Update: a full-row save would race concurrent sales over the same
// counter.
func (s *productService) AdjustStock(ctx context.Context, sc tenant.Scope, id uuid.UUID, delta int) (*dto.ProductResponse, error) {
	if delta == 0 {
		return nil, apierror.Invalid("el ajuste de stock no puede ser cero")
	}
	p, err := s.repo.AdjustStock(ctx, sc, id, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, sc, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNotFound
		}
		return err
	}
	return nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID.String(),
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		PriceSellNet: p.PriceSellNet,
		IVARate:      p.IVARate,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		LowStock:     p.LowStock(),
	}
}
