package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"argenbiz/internal/model"
	"argenbiz/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoData(t *testing.T) {
	contactRepo := newStubContactRepo()
	productRepo := newStubProductRepo()
	txRepo := newStubTransactionRepo()
	bookingRepo := newStubBookingRepo()
	svc := NewSeedService(contactRepo, productRepo, txRepo, bookingRepo, nil)
	sc := testScope()

	require.NoError(t, svc.SeedDemoData(context.Background(), sc))

	assert.Len(t, contactRepo.contacts, 5)
	assert.Len(t, productRepo.products, 5)
	assert.NotEmpty(t, txRepo.txs)
	assert.NotEmpty(t, bookingRepo.bookings)

	// Every seeded row belongs to the caller's tenant.
	for _, c := range contactRepo.contacts {
		assert.Equal(t, sc.TenantID, c.TenantID)
	}
	for _, tx := range txRepo.txs {
		assert.Equal(t, sc.TenantID, tx.TenantID)
	}

	// The dataset ships with products already under their minimum, so
	// the demo dashboard has something to warn about.
	low, err := productRepo.ListLowStock(context.Background(), sc)
	require.NoError(t, err)
	assert.NotEmpty(t, low)
}

func TestSeedDemoData_OmitidoConDatos(t *testing.T) {
	contactRepo := newStubContactRepo()
	productRepo := newStubProductRepo()
	txRepo := newStubTransactionRepo()
	bookingRepo := newStubBookingRepo()
	svc := NewSeedService(contactRepo, productRepo, txRepo, bookingRepo, nil)
	sc := testScope()

	require.NoError(t, contactRepo.Create(context.Background(), sc, &model.Contact{
		TenantID: sc.TenantID, Name: "Cliente Real", IsClient: true,
	}))

	require.NoError(t, svc.SeedDemoData(context.Background(), sc))

	// Nothing was added next to the existing data.
	assert.Len(t, contactRepo.contacts, 1)
	assert.Empty(t, productRepo.products)
	assert.Empty(t, txRepo.txs)
}

func TestSeedDemoData_SinClientes(t *testing.T) {
	contactRepo := newStubContactRepo()
	productRepo := newStubProductRepo()
	txRepo := newStubTransactionRepo()
	bookingRepo := newStubBookingRepo()
	svc := NewSeedService(contactRepo, productRepo, txRepo, bookingRepo, nil).(*seedService)
	sc := testScope()

	// A dataset holding only providers must seed without bookings
	// instead of failing on the client selection.
	svc.build = func(_ *rand.Rand, now time.Time) *seed.Dataset {
		return &seed.Dataset{
			Contacts: []model.Contact{{Name: "Proveedor Unico", IsProvider: true}},
			Transactions: []model.Transaction{{
				Type: model.TransactionExpense, Status: model.TransactionPaid, Date: now,
			}},
			Bookings: []model.Booking{{
				ServiceName: "Corte", StartTime: now, EndTime: now.Add(time.Hour),
				Status: model.BookingConfirmed,
			}},
		}
	}

	require.NoError(t, svc.SeedDemoData(context.Background(), sc))

	assert.Len(t, contactRepo.contacts, 1)
	assert.Len(t, txRepo.txs, 1)
	assert.Empty(t, bookingRepo.bookings)
}
