package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"argenbiz/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID string, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "maria@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authRouter(handlers ...gin.HandlerFunc) (*gin.Engine, *tenant.Scope) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var captured tenant.Scope
	chain := append([]gin.HandlerFunc{}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		captured = GetScope(c)
		c.Status(http.StatusOK)
	})
	r.GET("/probe", chain...)
	return r, &captured
}

func doProbe(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	uid := uuid.New()
	r, captured := authRouter(JWTAuth(testSecret))

	w := doProbe(r, signToken(t, uid.String(), testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uid, captured.Identity)
	assert.False(t, captured.HasTenant())
}

func TestJWTAuth_Rechazos(t *testing.T) {
	r, _ := authRouter(JWTAuth(testSecret))

	// No header.
	w := doProbe(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong signing key.
	w = doProbe(r, signToken(t, uuid.New().String(), "otra-clave"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid signature but a user_id that is not a UUID.
	w = doProbe(r, signToken(t, "not-a-uuid", testSecret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireTenant(t *testing.T) {
	uid := uuid.New()
	tenantID := uuid.New()
	lookup := func(_ context.Context, sc tenant.Scope) (uuid.UUID, error) {
		assert.Equal(t, uid, sc.Identity)
		return tenantID, nil
	}
	r, captured := authRouter(JWTAuth(testSecret), RequireTenant(lookup))

	w := doProbe(r, signToken(t, uid.String(), testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenantID, captured.TenantID)
}

func TestRequireTenant_SesionSinInicializar(t *testing.T) {
	lookup := func(context.Context, tenant.Scope) (uuid.UUID, error) {
		return uuid.Nil, nil
	}
	r, _ := authRouter(JWTAuth(testSecret), RequireTenant(lookup))

	w := doProbe(r, signToken(t, uuid.New().String(), testSecret))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "/v1/session/init")
}

func TestRequireTenant_SinAutenticacion(t *testing.T) {
	lookup := func(context.Context, tenant.Scope) (uuid.UUID, error) {
		t.Fatal("lookup no debe ejecutarse sin identidad")
		return uuid.Nil, nil
	}
	r, _ := authRouter(RequireTenant(lookup))

	w := doProbe(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireTenant_ErrorDeLookup(t *testing.T) {
	lookup := func(context.Context, tenant.Scope) (uuid.UUID, error) {
		return uuid.Nil, errors.New("db caida")
	}
	r, _ := authRouter(JWTAuth(testSecret), RequireTenant(lookup))

	w := doProbe(r, signToken(t, uuid.New().String(), testSecret))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
