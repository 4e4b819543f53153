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
	"gorm.io/gorm"
)

type ContactService interface {
	Create(ctx context.Context, sc tenant.Scope, req dto.CreateContactRequest) (*dto.ContactResponse, error)
	Get(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*dto.ContactResponse, error)
	List(ctx context.Context, sc tenant.Scope, filter dto.ContactFilter) (*dto.ContactListResponse, error)
	Update(ctx context.Context, sc tenant.Scope, id uuid.UUID, req dto.UpdateContactRequest) (*dto.ContactResponse, error)
	Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error
}

type contactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Create(ctx context.Context, sc tenant.Scope, req dto.CreateContactRequest) (*dto.ContactResponse, error) {
	tc := model.TaxCondition(req.TaxCondition)
	if req.TaxCondition == "" {
		tc = model.TaxConsumidorFinal
	}
	if !tc.Valid() {
		return nil, apierror.Invalid("condicion fiscal invalida: %s", req.TaxCondition)
	}

	isClient := req.IsClient
	if !req.IsClient && !req.IsProvider {
		isClient = true
	}

	c := &model.Contact{
		TenantID:     sc.TenantID,
		Name:         req.Name,
		CUIT:         req.CUIT,
		TaxCondition: tc,
		Email:        req.Email,
		Phone:        req.Phone,
		IsClient:     isClient,
		IsProvider:   req.IsProvider,
	}
	if err := s.repo.Create(ctx, sc, c); err != nil {
		return nil, err
	}
	return contactToResponse(c), nil
}

func (s *contactService) Get(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*dto.ContactResponse, error) {
	c, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return contactToResponse(c), nil
}

func (s *contactService) List(ctx context.Context, sc tenant.Scope, filter dto.ContactFilter) (*dto.ContactListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	contacts, total, err := s.repo.List(ctx, sc, repository.ContactFilter{
		Role:   filter.Role,
		Name:   filter.Name,
		Limit:  filter.Limit,
		Offset: (filter.Page - 1) * filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		data = append(data, *contactToResponse(&contacts[i]))
	}
	return &dto.ContactListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *contactService) Update(ctx context.Context, sc tenant.Scope, id uuid.UUID, req dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	c, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.CUIT != nil {
		c.CUIT = req.CUIT
	}
	if req.TaxCondition != "" {
		tc := model.TaxCondition(req.TaxCondition)
		if !tc.Valid() {
			return nil, apierror.Invalid("condicion fiscal invalida: %s", req.TaxCondition)
		}
		c.TaxCondition = tc
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.IsClient != nil {
		c.IsClient = *req.IsClient
	}
	if req.IsProvider != nil {
		c.IsProvider = *req.IsProvider
	}
	if !c.IsClient && !c.IsProvider {
		return nil, apierror.Invalid("el contacto debe ser cliente o proveedor")
	}
	if err := s.repo.Update(ctx, sc, c); err != nil {
		return nil, err
	}
	return contactToResponse(c), nil
}

func (s *contactService) Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, sc, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNotFound
		}
		return err
	}
	return nil
}

func contactToResponse(c *model.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		CUIT:         c.CUIT,
		TaxCondition: string(c.TaxCondition),
		Email:        c.Email,
		Phone:        c.Phone,
		IsClient:     c.IsClient,
		IsProvider:   c.IsProvider,
	}
}
