package seed

import (
	"math/rand"
	"testing"
	"time"

	"argenbiz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ds := Build(rand.New(rand.NewSource(1)), now)

	assert.Len(t, ds.Contacts, 5)
	assert.Len(t, ds.Products, 5)
	assert.GreaterOrEqual(t, len(ds.Transactions), 24)
	assert.Len(t, ds.Bookings, 3)

	// At least one client for bookings and sales to attach to.
	var clients int
	for _, c := range ds.Contacts {
		if c.IsClient {
			clients++
		}
		require.NotNil(t, c.CUIT)
		assert.True(t, c.TaxCondition.Valid())
	}
	assert.NotZero(t, clients)

	// The dataset includes low-stock products so the demo dashboard
	// has a warning to show.
	var low int
	for _, p := range ds.Products {
		if p.LowStock() {
			low++
		}
	}
	assert.GreaterOrEqual(t, low, 2)
}

func TestBuild_MontosConsistentes(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ds := Build(rand.New(rand.NewSource(7)), now)

	for _, tx := range ds.Transactions {
		assert.True(t, tx.Type.Valid())
		assert.Equal(t, model.TransactionPaid, tx.Status)
		// total = net + iva, with iva = net * 0.21 rounded at creation.
		assert.True(t, tx.AmountTotal.Equal(tx.AmountNet.Add(tx.AmountIVA)), tx.AmountNet.String())
		assert.False(t, tx.Date.After(now))
	}

	for _, b := range ds.Bookings {
		assert.True(t, b.EndTime.After(b.StartTime))
		assert.Equal(t, model.BookingConfirmed, b.Status)
		assert.True(t, b.StartTime.After(now))
	}
}
