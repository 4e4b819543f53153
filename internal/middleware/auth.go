package middleware

import (
	"context"
	"net/http"
	"strings"

	"argenbiz/internal/apierror"
	"argenbiz/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClaimsKey = "claims"
	ScopeKey  = "scope"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token and stores the caller's scope in
// the context. The scope carries only the identity at this point; the
// tenant binding is attached by RequireTenant on routes that need it.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		uid, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ScopeKey, tenant.NewScope(uid))
		c.Next()
	}
}

// TenantLookup resolves the tenant bound to an identity. Implemented by
// the session layer; returns uuid.Nil when the identity has no tenant
// yet.
type TenantLookup func(ctx context.Context, sc tenant.Scope) (uuid.UUID, error)

// RequireTenant attaches the resolved tenant to the request scope.
// Identities without a tenant are told to initialize their session
// first; they can only reach /v1/session/init and the public routes.
func RequireTenant(lookup TenantLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := GetScope(c)
		if sc.IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		tenantID, err := lookup(c.Request.Context(), sc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
			return
		}
		if tenantID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusConflict, apierror.New("Sesion no inicializada; llame a /v1/session/init"))
			return
		}
		c.Set(ScopeKey, sc.WithTenant(tenantID))
		c.Next()
	}
}

// GetScope retrieves the caller's scope from the Gin context. Routes
// outside JWTAuth get the anonymous scope.
func GetScope(c *gin.Context) tenant.Scope {
	if v, ok := c.Get(ScopeKey); ok {
		if sc, ok := v.(tenant.Scope); ok {
			return sc
		}
	}
	return tenant.Anonymous
}
