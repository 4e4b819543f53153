package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidIVARate(t *testing.T) {
	assert.True(t, ValidIVARate(decimal.Zero))
	assert.True(t, ValidIVARate(decimal.NewFromFloat(0.105)))
	assert.True(t, ValidIVARate(decimal.NewFromFloat(0.21)))

	// Equality is numeric, not representational.
	assert.True(t, ValidIVARate(decimal.RequireFromString("0.2100")))

	assert.False(t, ValidIVARate(decimal.NewFromFloat(0.27)))
	assert.False(t, ValidIVARate(decimal.NewFromFloat(0.19)))
	assert.False(t, ValidIVARate(decimal.NewFromInt(21)))
}

func TestEnums(t *testing.T) {
	assert.True(t, TransactionSale.Valid())
	assert.False(t, TransactionType("TRANSFER").Valid())

	assert.True(t, TransactionCancelled.Valid())
	assert.False(t, TransactionStatus("REFUNDED").Valid())

	assert.True(t, TaxConsumidorFinal.Valid())
	assert.False(t, TaxCondition("Autonomo").Valid())

	assert.True(t, BookingConfirmed.Valid())
	assert.False(t, BookingStatus("DONE").Valid())
}

func TestProductLowStock(t *testing.T) {
	p := Product{Stock: 6, MinStock: 5}
	assert.False(t, p.LowStock())

	// At the threshold counts as low.
	p.Stock = 5
	assert.True(t, p.LowStock())
}
