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
	"gorm.io/gorm"
)

type BookingService interface {
	Create(ctx context.Context, sc tenant.Scope, req dto.CreateBookingRequest) (*dto.BookingResponse, error)
	Get(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*dto.BookingResponse, error)
	List(ctx context.Context, sc tenant.Scope, filter dto.BookingFilter) (*dto.BookingListResponse, error)
	UpdateStatus(ctx context.Context, sc tenant.Scope, id uuid.UUID, status string) (*dto.BookingResponse, error)
	Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error
}

type bookingService struct {
	repo        repository.BookingRepository
	contactRepo repository.ContactRepository
}

func NewBookingService(repo repository.BookingRepository, contactRepo repository.ContactRepository) BookingService {
	return &bookingService{repo: repo, contactRepo: contactRepo}
}

// Create schedules an appointment. The end is either explicit or
// derived from a duration in minutes; in both cases end > start.
func (s *bookingService) Create(ctx context.Context, sc tenant.Scope, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	contactID, err := uuid.Parse(req.ContactID)
	if err != nil {
		return nil, apierror.Invalid("contact_id invalido: %v", err)
	}
	if _, err := s.contactRepo.FindByID(ctx, sc, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalid("el contacto de la reserva no existe")
		}
		return nil, err
	}

	var end time.Time
	switch {
	case req.EndTime != nil:
		end = *req.EndTime
	case req.DurationMinutes > 0:
		end = req.StartTime.Add(time.Duration(req.DurationMinutes) * time.Minute)
	default:
		return nil, apierror.Invalid("la reserva requiere end_time o duration_minutes")
	}
	if !end.After(req.StartTime) {
		return nil, apierror.Invalid("la reserva debe terminar despues de empezar")
	}

	b := &model.Booking{
		TenantID:    sc.TenantID,
		ContactID:   contactID,
		ServiceName: req.ServiceName,
		StartTime:   req.StartTime,
		EndTime:     end,
		Status:      model.BookingPending,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, sc, b); err != nil {
		return nil, err
	}
	return bookingToResponse(b), nil
}

func (s *bookingService) Get(ctx context.Context, sc tenant.Scope, id uuid.UUID) (*dto.BookingResponse, error) {
	b, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return bookingToResponse(b), nil
}

func (s *bookingService) List(ctx context.Context, sc tenant.Scope, filter dto.BookingFilter) (*dto.BookingListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	repoFilter := repository.BookingFilter{
		Status: model.BookingStatus(filter.Status),
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
	bookings, total, err := s.repo.List(ctx, sc, repoFilter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		data = append(data, *bookingToResponse(&bookings[i]))
	}
	return &dto.BookingListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, sc tenant.Scope, id uuid.UUID, status string) (*dto.BookingResponse, error) {
	st := model.BookingStatus(status)
	if !st.Valid() {
		return nil, apierror.Invalid("estado invalido: %s", status)
	}
	if err := s.repo.UpdateStatus(ctx, sc, id, st); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return nil, err
	}
	return bookingToResponse(b), nil
}

func (s *bookingService) Delete(ctx context.Context, sc tenant.Scope, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, sc, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNotFound
		}
		return err
	}
	return nil
}

func bookingToResponse(b *model.Booking) *dto.BookingResponse {
	var contactName *string
	if b.Contact != nil {
		contactName = &b.Contact.Name
	}
	return &dto.BookingResponse{
		ID:          b.ID.String(),
		ContactID:   b.ContactID.String(),
		ContactName: contactName,
		ServiceName: b.ServiceName,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		Notes:       b.Notes,
	}
}
