package service

import (
	"context"
	"math/rand"
	"time"

	"argenbiz/internal/apierror"
	"argenbiz/internal/model"
	"argenbiz/internal/repository"
	"argenbiz/internal/seed"
	"argenbiz/internal/tenant"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SeedService loads the demo dataset into the caller's tenant. It is
// invoked explicitly from the onboarding screen, never automatically:
// a tenant that already holds data is left untouched.
type SeedService interface {
	SeedDemoData(ctx context.Context, sc tenant.Scope) error
}

type seedService struct {
	contactRepo repository.ContactRepository
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	bookingRepo repository.BookingRepository
	rdb         *redis.Client
	build       func(rng *rand.Rand, now time.Time) *seed.Dataset
}

func NewSeedService(
	contactRepo repository.ContactRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	bookingRepo repository.BookingRepository,
	rdb *redis.Client,
) SeedService {
	return &seedService{
		contactRepo: contactRepo,
		productRepo: productRepo,
		txRepo:      txRepo,
		bookingRepo: bookingRepo,
		rdb:         rdb,
		build:       seed.Build,
	}
}

func (s *seedService) SeedDemoData(ctx context.Context, sc tenant.Scope) error {
	// Per-tenant busy flag. A lost flag (Redis down) degrades to the
	// data-presence check below.
	if s.rdb != nil {
		key := "seed:busy:" + sc.TenantID.String()
		ok, err := s.rdb.SetNX(ctx, key, "1", 2*time.Minute).Result()
		if err == nil && !ok {
			return apierror.ErrSeedInProgress
		}
		defer s.rdb.Del(context.WithoutCancel(ctx), key)
	}

	_, existing, err := s.contactRepo.List(ctx, sc, repository.ContactFilter{Role: "all", Limit: 1})
	if err != nil {
		return err
	}
	if existing > 0 {
		log.Info().Str("tenant_id", sc.TenantID.String()).
			Msg("seed omitido: el tenant ya tiene datos")
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ds := s.build(rng, time.Now())

	for i := range ds.Contacts {
		ds.Contacts[i].TenantID = sc.TenantID
		if err := s.contactRepo.Create(ctx, sc, &ds.Contacts[i]); err != nil {
			return err
		}
	}
	for i := range ds.Products {
		ds.Products[i].TenantID = sc.TenantID
		if err := s.productRepo.Create(ctx, sc, &ds.Products[i]); err != nil {
			return err
		}
	}

	clientIdx := make([]int, 0, len(ds.Contacts))
	for i, c := range ds.Contacts {
		if c.IsClient {
			clientIdx = append(clientIdx, i)
		}
	}
	for i := range ds.Transactions {
		ds.Transactions[i].TenantID = sc.TenantID
		if ds.Transactions[i].Type == model.TransactionSale && len(clientIdx) > 0 && i%3 == 0 {
			id := ds.Contacts[clientIdx[i%len(clientIdx)]].ID
			ds.Transactions[i].ContactID = &id
		}
		if err := s.txRepo.Create(ctx, sc, &ds.Transactions[i]); err != nil {
			return err
		}
	}
	// Bookings need a client to attach to; a dataset without any
	// client contacts gets none.
	if len(clientIdx) == 0 {
		ds.Bookings = nil
	}
	for i := range ds.Bookings {
		ds.Bookings[i].TenantID = sc.TenantID
		ds.Bookings[i].ContactID = ds.Contacts[clientIdx[i%len(clientIdx)]].ID
		if err := s.bookingRepo.Create(ctx, sc, &ds.Bookings[i]); err != nil {
			return err
		}
	}

	log.Info().Str("tenant_id", sc.TenantID.String()).
		Int("contacts", len(ds.Contacts)).
		Int("products", len(ds.Products)).
		Int("transactions", len(ds.Transactions)).
		Int("bookings", len(ds.Bookings)).
		Msg("datos demo cargados")
	return nil
}
