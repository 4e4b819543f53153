package service

import (
	"context"
	"encoding/json"
	"testing"

	"argenbiz/internal/dto"
	"argenbiz/internal/model"
	"argenbiz/internal/repository"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type siteContentKey struct {
	tenantID uuid.UUID // uuid.Nil marks global rows
	key      string
}

// stubSiteContentRepo is an in-memory SiteContentRepository with the
// same shadowing rule as the real one: a tenant row hides the global
// row for the same key.
type stubSiteContentRepo struct {
	rows map[siteContentKey]*model.SiteContent
}

func newStubSiteContentRepo() *stubSiteContentRepo {
	return &stubSiteContentRepo{rows: make(map[siteContentKey]*model.SiteContent)}
}

func (r *stubSiteContentRepo) Get(_ context.Context, _ tenant.Scope, tenantID *uuid.UUID, key string) (*model.SiteContent, error) {
	if tenantID != nil {
		if c, ok := r.rows[siteContentKey{*tenantID, key}]; ok {
			cp := *c
			return &cp, nil
		}
	}
	if c, ok := r.rows[siteContentKey{uuid.Nil, key}]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSiteContentRepo) ListForTenant(_ context.Context, _ tenant.Scope, tenantID uuid.UUID) ([]model.SiteContent, error) {
	var out []model.SiteContent
	for k, c := range r.rows {
		if k.tenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubSiteContentRepo) Upsert(_ context.Context, _ tenant.Scope, content *model.SiteContent) error {
	k := siteContentKey{key: content.Key}
	if content.TenantID != nil {
		k.tenantID = *content.TenantID
	}
	cp := *content
	r.rows[k] = &cp
	return nil
}

func (r *stubSiteContentRepo) Delete(_ context.Context, _ tenant.Scope, tenantID uuid.UUID, key string) error {
	k := siteContentKey{tenantID, key}
	if _, ok := r.rows[k]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, k)
	return nil
}

var _ repository.SiteContentRepository = (*stubSiteContentRepo)(nil)

// ── Tests ────────────────────────────────────────────────────────────────────

func TestSiteContent_TenantPisaGlobal(t *testing.T) {
	repo := newStubSiteContentRepo()
	svc := NewSiteContentService(repo, nil, 600)
	sc := testScope()

	require.NoError(t, repo.Upsert(context.Background(), tenant.Anonymous, &model.SiteContent{
		Key: "landing", Content: datatypes.JSON(`{"title":"Bienvenido"}`),
	}))

	// Without a tenant override the global row answers.
	resp, err := svc.GetPublic(context.Background(), &sc.TenantID, "landing")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Bienvenido"}`, string(resp.Content))

	_, err = svc.Upsert(context.Background(), sc, "landing", dto.UpsertSiteContentRequest{
		Content: json.RawMessage(`{"title":"Almacen Lopez"}`),
	})
	require.NoError(t, err)

	resp, err = svc.GetPublic(context.Background(), &sc.TenantID, "landing")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Almacen Lopez"}`, string(resp.Content))

	// Other tenants keep seeing the global row.
	otherTenant := uuid.New()
	resp, err = svc.GetPublic(context.Background(), &otherTenant, "landing")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Bienvenido"}`, string(resp.Content))
}

func TestSiteContent_ClaveInexistente(t *testing.T) {
	svc := NewSiteContentService(newStubSiteContentRepo(), nil, 600)

	_, err := svc.GetPublic(context.Background(), nil, "no-existe")
	assert.ErrorContains(t, err, "registro no encontrado")
}

func TestSiteContent_Borrado(t *testing.T) {
	repo := newStubSiteContentRepo()
	svc := NewSiteContentService(repo, nil, 600)
	sc := testScope()

	_, err := svc.Upsert(context.Background(), sc, "precios", dto.UpsertSiteContentRequest{
		Content: json.RawMessage(`{"lista":[]}`),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), sc, "precios"))
	err = svc.Delete(context.Background(), sc, "precios")
	assert.ErrorContains(t, err, "registro no encontrado")
}
