package service

import (
	"context"
	"errors"
	"time"

	"argenbiz/internal/apierror"
	"argenbiz/internal/dto"
	"argenbiz/internal/model"
	"argenbiz/internal/repository"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionService interface {
	Create(ctx context.Context, sc tenant.Scope, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Get(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*dto.TransactionResponse, error)
	List(ctx context.Context, sc tenant.Scope, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
	UpdateStatus(ctx context.Context, sc tenant.Scope, id uuid.UUID, status string) (*dto.TransactionResponse, error)
	Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error
}

type transactionService struct {
	repo repository.TransactionRepository
}

func NewTransactionService(repo repository.TransactionRepository) TransactionService {
	return &transactionService{repo: repo}
}

// Create computes amount_iva and amount_total from the net amount and
// the rate, once. The stored totals are the record of truth; nothing
// downstream recomputes them, so a later rate change never rewrites
// history.
func (s *transactionService) Create(ctx context.Context, sc tenant.Scope, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	typ := model.TransactionType(req.Type)
	if !typ.Valid() {
		return nil, apierror.Invalid("tipo de transaccion invalido: %s", req.Type)
	}

	rate := decimal.NewFromFloat(0.21)
	if req.IVARate != nil {
		rate = *req.IVARate
	}
	if !model.ValidIVARate(rate) {
		return nil, apierror.Invalid("alicuota de IVA invalida: %s", rate)
	}

	status := model.TransactionPaid
	if req.Status != "" {
		status = model.TransactionStatus(req.Status)
		if !status.Valid() {
			return nil, apierror.Invalid("estado invalido: %s", req.Status)
		}
	}

	var contactID *uuid.UUID
	if req.ContactID != nil {
		cid, err := uuid.Parse(*req.ContactID)
		if err != nil {
			return nil, apierror.Invalid("contact_id invalido: %v", err)
		}
		contactID = &cid
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	amountIVA := req.AmountNet.Mul(rate).Round(2)
	amountTotal := req.AmountNet.Add(amountIVA)

	t := &model.Transaction{
		TenantID:    sc.TenantID,
		Type:        typ,
		ContactID:   contactID,
		AmountNet:   req.AmountNet,
		AmountIVA:   amountIVA,
		AmountTotal: amountTotal,
		Status:      status,
		Date:        date,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, sc, t); err != nil {
		return nil, err
	}
	return transactionToResponse(t), nil
}

func (s *transactionService) Get(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*dto.TransactionResponse, error) {
	t, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return transactionToResponse(t), nil
}

func (s *transactionService) List(ctx context.Context, sc tenant.Scope, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	repoFilter := repository.TransactionFilter{
		Type:   model.TransactionType(filter.Type),
		Status: model.TransactionStatus(filter.Status),
		Limit:  filter.Limit,
		Offset: (filter.Page - 1) * filter.Limit,
	}
	if filter.From != "" {
		from, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			return nil, apierror.Invalid("fecha 'from' invalida: %v", err)
		}
		repoFilter.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			return nil, apierror.Invalid("fecha 'to' invalida: %v", err)
		}
		// Inclusive end of day.
		to = to.AddDate(0, 0, 1)
		repoFilter.To = &to
	}

	txs, total, err := s.repo.List(ctx, sc, repoFilter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		data = append(data, *transactionToResponse(&txs[i]))
	}
	return &dto.TransactionListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// UpdateStatus changes the settlement state only. Amounts are immutable
// after creation; cancelling a transaction excludes it from every
// aggregate without touching its stored totals.
func (s *transactionService) UpdateStatus(ctx context.Context, sc tenant.Scope, id uuid.UUID, status string) (*dto.TransactionResponse, error) {
	st := model.TransactionStatus(status)
	if !st.Valid() {
		return nil, apierror.Invalid("estado invalido: %s", status)
	}
	if err := s.repo.UpdateStatus(ctx, sc, id, st); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	t, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return nil, err
	}
	return transactionToResponse(t), nil
}

func (s *transactionService) Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, sc, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNotFound
		}
		return err
	}
	return nil
}

func transactionToResponse(t *model.Transaction) *dto.TransactionResponse {
	var contactID *string
	if t.ContactID != nil {
		s := t.ContactID.String()
		contactID = &s
	}
	var contactName *string
	if t.Contact != nil {
		contactName = &t.Contact.Name
	}
	return &dto.TransactionResponse{
		ID:          t.ID.String(),
		Type:        string(t.Type),
		ContactID:   contactID,
		ContactName: contactName,
		AmountNet:   t.AmountNet,
		AmountIVA:   t.AmountIVA,
		AmountTotal: t.AmountTotal,
		Status:      string(t.Status),
		Date:        t.Date,
		Notes:       t.Notes,
	}
}
