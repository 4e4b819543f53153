//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Postgres runs the actual row-level policies here, so these tests
// cover what the unit suites cannot: the bootstrap procedure, the
// restricted role, and cross-tenant invisibility.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"argenbiz/internal/config"
	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/rls"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("argenbiz_test"),
		tcPostgres.WithUsername("argenbiz"),
		tcPostgres.WithPassword("argenbiz"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	adminURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	appURL := fmt.Sprintf("postgres://argenbiz_app:argenbiz@%s:%s/argenbiz_test?sslmode=disable", host, port.Port())

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                8000,
		Env:                 "test",
		DatabaseURL:         appURL,
		AdminDatabaseURL:    adminURL,
		AppDBPassword:       "argenbiz",
		RedisURL:            rdURL,
		CORSAllowedOrigin:   "*",
		JWTSecret:           "test-secret-key",
		JWTExpirationHours:  8,
		JWTRefreshHours:     24,
		DashboardCacheTTL:   1,
		SessionCacheTTL:     300,
		SiteContentCacheTTL: 1,
	}

	adminDB, err := infra.NewAdminDatabase(cfg.AdminDatabaseURL)
	require.NoError(t, err)
	require.NoError(t, adminDB.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error)
	require.NoError(t, adminDB.AutoMigrate(
		&model.User{}, &model.Tenant{}, &model.Profile{},
		&model.Contact{}, &model.Product{}, &model.Transaction{},
		&model.Booking{}, &model.SiteContent{},
	))
	require.NoError(t, rls.EnsureAppRole(adminDB, cfg.AppDBPassword))
	require.NoError(t, rls.Install(adminDB))

	appDB, err := infra.NewAppDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	srv := httptest.NewServer(New(cfg, adminDB, appDB, rdb))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv}
}

// signupAndInit registers a fresh user and initializes its session,
// returning the access token and the bootstrapped tenant id.
func signupAndInit(t *testing.T, env *testEnv, email, tenantName string) (string, string) {
	t.Helper()

	resp := do(t, env.server, "POST", "/v1/auth/signup",
		jsonBody(t, map[string]string{"email": email, "password": "secretpass1"}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)

	resp = do(t, env.server, "POST", "/v1/session/init",
		jsonBody(t, map[string]string{"tenant_name": tenantName}), login.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session struct {
		State  string `json:"state"`
		Tenant struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"tenant"`
	}
	decodeJSON(t, resp, &session)
	require.Equal(t, "bootstrapped", session.State)
	require.Equal(t, tenantName, session.Tenant.Name)

	return login.AccessToken, session.Tenant.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_SessionLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/auth/signup",
		jsonBody(t, map[string]string{"email": "maria@e2e.test", "password": "secretpass1"}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &login)

	// Tenant-scoped routes reject the caller until the session is
	// initialized.
	resp = do(t, env.server, "GET", "/v1/contacts", nil, login.AccessToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/session/init",
		jsonBody(t, map[string]string{"tenant_name": "Almacen Lopez", "full_name": "Maria Lopez"}),
		login.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session struct {
		State  string `json:"state"`
		Tenant struct {
			Name string `json:"name"`
			CUIT string `json:"cuit"`
		} `json:"tenant"`
	}
	decodeJSON(t, resp, &session)
	assert.Equal(t, "bootstrapped", session.State)
	assert.Equal(t, "Almacen Lopez", session.Tenant.Name)
	assert.NotEmpty(t, session.Tenant.CUIT)

	// Re-init is idempotent: same tenant, now just ready.
	resp = do(t, env.server, "POST", "/v1/session/init", jsonBody(t, map[string]string{}), login.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var again struct {
		State string `json:"state"`
	}
	decodeJSON(t, resp, &again)
	assert.Equal(t, "ready", again.State)

	resp = do(t, env.server, "GET", "/v1/contacts", nil, login.AccessToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_SalesAndDashboard(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := signupAndInit(t, env, "ventas@e2e.test", "Kiosco 24")

	resp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"sku": "CAFE-250", "name": "Cafe tostado 250g",
			"price_sell_net": "4800", "stock": 10, "min_stock": 3,
		}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &product)

	resp = do(t, env.server, "POST", "/v1/transactions",
		jsonBody(t, map[string]any{"type": "SALE", "amount_net": "100000"}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tx struct {
		ID          string `json:"id"`
		AmountIVA   string `json:"amount_iva"`
		AmountTotal string `json:"amount_total"`
		Status      string `json:"status"`
	}
	decodeJSON(t, resp, &tx)
	assert.Equal(t, "21000", tx.AmountIVA)
	assert.Equal(t, "121000", tx.AmountTotal)
	assert.Equal(t, "PAID", tx.Status)

	resp = do(t, env.server, "PATCH", "/v1/products/"+product.ID+"/stock",
		jsonBody(t, map[string]any{"delta": -8}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adjusted struct {
		Stock    int  `json:"stock"`
		LowStock bool `json:"low_stock"`
	}
	decodeJSON(t, resp, &adjusted)
	assert.Equal(t, 2, adjusted.Stock)
	assert.True(t, adjusted.LowStock)

	resp = do(t, env.server, "GET", "/v1/dashboard", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		SalesToday string `json:"sales_today"`
		TotalCash  string `json:"total_cash"`
		LowStock   []struct {
			Name string `json:"name"`
		} `json:"low_stock"`
		Chart []struct {
			Date string `json:"date"`
		} `json:"chart"`
	}
	decodeJSON(t, resp, &dash)
	assert.Equal(t, "121000", dash.SalesToday)
	assert.Equal(t, "121000", dash.TotalCash)
	require.Len(t, dash.LowStock, 1)
	assert.Equal(t, "Cafe tostado 250g", dash.LowStock[0].Name)
	assert.Len(t, dash.Chart, 7)

	// Cancelling the sale removes it from the aggregates.
	resp = do(t, env.server, "PATCH", "/v1/transactions/"+tx.ID+"/status",
		jsonBody(t, map[string]any{"status": "CANCELLED"}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Dashboard cache TTL is 1s in this env; wait it out. The probe
	// avoids the require-based helpers because Eventually runs the
	// condition off the test goroutine.
	assert.Eventually(t, func() bool {
		req, err := http.NewRequest(http.MethodGet, env.server.URL+"/v1/dashboard", nil)
		if err != nil {
			return false
		}
		req.Header.Set("Authorization", "Bearer "+token)
		probe, err := env.server.Client().Do(req)
		if err != nil {
			return false
		}
		defer probe.Body.Close()
		var d struct {
			SalesToday string `json:"sales_today"`
		}
		if json.NewDecoder(probe.Body).Decode(&d) != nil {
			return false
		}
		return d.SalesToday == "0"
	}, 5*time.Second, 250*time.Millisecond)
}

func TestE2E_TenantIsolation(t *testing.T) {
	env := setupTestEnv(t)
	tokenA, _ := signupAndInit(t, env, "a@e2e.test", "Negocio A")
	tokenB, _ := signupAndInit(t, env, "b@e2e.test", "Negocio B")

	resp := do(t, env.server, "POST", "/v1/contacts",
		jsonBody(t, map[string]any{"name": "Cliente Secreto", "is_client": true}), tokenA)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var contact struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &contact)

	// Tenant B sees an empty list and cannot address A's row by id.
	resp = do(t, env.server, "GET", "/v1/contacts", nil, tokenB)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, resp, &list)
	assert.Zero(t, list.Total)

	resp = do(t, env.server, "GET", "/v1/contacts/"+contact.ID, nil, tokenB)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "DELETE", "/v1/contacts/"+contact.ID, nil, tokenB)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// B's tenant settings are its own.
	resp = do(t, env.server, "GET", "/v1/tenant", nil, tokenB)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ten struct {
		Name string `json:"name"`
	}
	decodeJSON(t, resp, &ten)
	assert.Equal(t, "Negocio B", ten.Name)

	// A still reaches its contact.
	resp = do(t, env.server, "GET", "/v1/contacts/"+contact.ID, nil, tokenA)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_SeedDemo(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := signupAndInit(t, env, "demo@e2e.test", "Demo Shop")

	resp := do(t, env.server, "POST", "/v1/tenant/seed", nil, token)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/v1/contacts", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var contacts struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, resp, &contacts)
	assert.Equal(t, int64(5), contacts.Total)

	// Seeding twice never duplicates data.
	resp = do(t, env.server, "POST", "/v1/tenant/seed", nil, token)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/v1/contacts", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &contacts)
	assert.Equal(t, int64(5), contacts.Total)
}

func TestE2E_SiteContent(t *testing.T) {
	env := setupTestEnv(t)
	token, tenantID := signupAndInit(t, env, "contenido@e2e.test", "Peluqueria Sur")

	resp := do(t, env.server, "PUT", "/v1/site-content/landing",
		jsonBody(t, map[string]any{"content": map[string]any{"title": "Peluqueria Sur"}}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Public read, no token, tenant override resolved.
	resp = do(t, env.server, "GET", "/v1/site-content/landing?tenant_id="+tenantID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var content struct {
		Content struct {
			Title string `json:"title"`
		} `json:"content"`
	}
	decodeJSON(t, resp, &content)
	assert.Equal(t, "Peluqueria Sur", content.Content.Title)

	// No global fallback row exists for the bare key.
	resp = do(t, env.server, "GET", "/v1/site-content/landing", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
