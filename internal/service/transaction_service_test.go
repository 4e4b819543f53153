package service

import (
	"context"
	"testing"
	"time"

	"argenbiz/internal/dto"
	"argenbiz/internal/model"
	"argenbiz/internal/repository"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubTransactionRepo is an in-memory TransactionRepository. The
// aggregate methods mirror the SQL they replace, cancelled rows
// excluded.
type stubTransactionRepo struct {
	txs map[uuid.UUID]*model.Transaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{txs: make(map[uuid.UUID]*model.Transaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, _ tenant.Scope, t *model.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	r.txs[t.ID] = &cp
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, _ tenant.Scope, id uuid.UUID) (*model.Transaction, error) {
	t, ok := r.txs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransactionRepo) List(_ context.Context, _ tenant.Scope, f repository.TransactionFilter) ([]model.Transaction, int64, error) {
	var out []model.Transaction
	for _, t := range r.txs {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.From != nil && t.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !t.Date.Before(*f.To) {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTransactionRepo) UpdateStatus(_ context.Context, _ tenant.Scope, id uuid.UUID, status model.TransactionStatus) error {
	t, ok := r.txs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	return nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, _ tenant.Scope, id uuid.UUID) error {
	if _, ok := r.txs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.txs, id)
	return nil
}

func (r *stubTransactionRepo) SumSalesSince(_ context.Context, _ tenant.Scope, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.txs {
		if t.Type == model.TransactionSale && t.Status != model.TransactionCancelled && !t.Date.Before(since) {
			sum = sum.Add(t.AmountTotal)
		}
	}
	return sum, nil
}

func (r *stubTransactionRepo) SumByType(_ context.Context, _ tenant.Scope, typ model.TransactionType) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.txs {
		if t.Type == typ && t.Status != model.TransactionCancelled {
			sum = sum.Add(t.AmountTotal)
		}
	}
	return sum, nil
}

func (r *stubTransactionRepo) DailySalesSeries(_ context.Context, _ tenant.Scope, since time.Time) ([]repository.DailySales, error) {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, t := range r.txs {
		if t.Type != model.TransactionSale || t.Status == model.TransactionCancelled || t.Date.Before(since) {
			continue
		}
		day := time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, t.Date.Location())
		byDay[day] = byDay[day].Add(t.AmountTotal)
	}
	var out []repository.DailySales
	for day, total := range byDay {
		out = append(out, repository.DailySales{Day: day, Total: total})
	}
	return out, nil
}

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearTransaccion_CalculoIVA(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewTransactionService(repo)
	sc := testScope()

	resp, err := svc.Create(context.Background(), sc, dto.CreateTransactionRequest{
		Type:      "SALE",
		AmountNet: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)
	assert.Equal(t, "21000", resp.AmountIVA.String())
	assert.Equal(t, "121000", resp.AmountTotal.String())
	assert.Equal(t, "PAID", resp.Status)

	// The stored row holds the computed totals.
	stored, err := repo.FindByID(context.Background(), sc, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.True(t, stored.AmountTotal.Equal(decimal.NewFromInt(121000)))
}

func TestCrearTransaccion_AlicuotaReducida(t *testing.T) {
	svc := NewTransactionService(newStubTransactionRepo())

	rate := decimal.NewFromFloat(0.105)
	resp, err := svc.Create(context.Background(), testScope(), dto.CreateTransactionRequest{
		Type:      "EXPENSE",
		AmountNet: decimal.NewFromFloat(1000.33),
		IVARate:   &rate,
	})
	require.NoError(t, err)
	// 1000.33 * 0.105 = 105.03465, rounded to 2 decimals at creation.
	assert.Equal(t, "105.03", resp.AmountIVA.String())
	assert.Equal(t, "1105.36", resp.AmountTotal.String())
}

func TestCrearTransaccion_Exenta(t *testing.T) {
	svc := NewTransactionService(newStubTransactionRepo())

	// Rate 0 is a valid rate (operaciones exentas), not "use the default".
	rate := decimal.Zero
	resp, err := svc.Create(context.Background(), testScope(), dto.CreateTransactionRequest{
		Type:      "SALE",
		AmountNet: decimal.NewFromInt(5000),
		IVARate:   &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, "0", resp.AmountIVA.String())
	assert.Equal(t, "5000", resp.AmountTotal.String())
}

func TestCrearTransaccion_AlicuotaInvalida(t *testing.T) {
	svc := NewTransactionService(newStubTransactionRepo())

	rate := decimal.NewFromFloat(0.19)
	_, err := svc.Create(context.Background(), testScope(), dto.CreateTransactionRequest{
		Type:      "SALE",
		AmountNet: decimal.NewFromInt(100),
		IVARate:   &rate,
	})
	assert.ErrorContains(t, err, "alicuota de IVA invalida")
}

func TestCrearTransaccion_TipoInvalido(t *testing.T) {
	svc := NewTransactionService(newStubTransactionRepo())

	_, err := svc.Create(context.Background(), testScope(), dto.CreateTransactionRequest{
		Type:      "TRANSFER",
		AmountNet: decimal.NewFromInt(100),
	})
	assert.ErrorContains(t, err, "tipo de transaccion invalido")
}

func TestCancelarTransaccion_MontosInmutables(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewTransactionService(repo)
	sc := testScope()

	created, err := svc.Create(context.Background(), sc, dto.CreateTransactionRequest{
		Type:      "SALE",
		AmountNet: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.UpdateStatus(context.Background(), sc, id, "CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.True(t, resp.AmountTotal.Equal(created.AmountTotal))

	// Cancelled rows drop out of the aggregates but stay listable.
	sum, err := repo.SumByType(context.Background(), sc, model.TransactionSale)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestActualizarEstadoTransaccion_EstadoInvalido(t *testing.T) {
	svc := NewTransactionService(newStubTransactionRepo())

	_, err := svc.UpdateStatus(context.Background(), testScope(), uuid.New(), "REFUNDED")
	assert.ErrorContains(t, err, "estado invalido")
}

func TestListarTransacciones_RangoDeFechas(t *testing.T) {
	repo := newStubTransactionRepo()
	svc := NewTransactionService(repo)
	sc := testScope()

	day := func(s string) *time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return &d
	}
	for _, d := range []string{"2026-08-01", "2026-08-15", "2026-09-01"} {
		_, err := svc.Create(context.Background(), sc, dto.CreateTransactionRequest{
			Type:      "SALE",
			AmountNet: decimal.NewFromInt(100),
			Date:      day(d),
		})
		require.NoError(t, err)
	}

	// 'to' is inclusive: a transaction dated exactly on the boundary
	// day is returned.
	resp, err := svc.List(context.Background(), sc, dto.TransactionFilter{From: "2026-08-10", To: "2026-08-15"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	_, err = svc.List(context.Background(), sc, dto.TransactionFilter{From: "15/08/2026"})
	assert.ErrorContains(t, err, "fecha 'from' invalida")
}
