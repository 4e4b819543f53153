package router

import (
	"context"
	"errors"
	"time"

	"argenbiz/internal/config"
	"argenbiz/internal/handler"
	"argenbiz/internal/infra"
	"argenbiz/internal/middleware"
	"argenbiz/internal/repository"
	"argenbiz/internal/service"
	"argenbiz/internal/tenant"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// adminDB serves only the auth identity store; every tenant-scoped
// repository runs on the restricted appDB handle.
func New(cfg *config.Config, adminDB *gorm.DB, appDB *infra.AppDB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(adminDB)
	sessionRepo := repository.NewSessionRepository(appDB)
	tenantRepo := repository.NewTenantRepository(appDB)
	contactRepo := repository.NewContactRepository(appDB)
	productRepo := repository.NewProductRepository(appDB)
	txRepo := repository.NewTransactionRepository(appDB)
	bookingRepo := repository.NewBookingRepository(appDB)
	siteContentRepo := repository.NewSiteContentRepository(appDB)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	sessionSvc := service.NewSessionService(sessionRepo, tenantRepo, rdb, cfg.SessionCacheTTL)
	contactSvc := service.NewContactService(contactRepo)
	productSvc := service.NewProductService(productRepo)
	txSvc := service.NewTransactionService(txRepo)
	bookingSvc := service.NewBookingService(bookingRepo, contactRepo)
	dashboardSvc := service.NewDashboardService(txRepo, productRepo, rdb, cfg.DashboardCacheTTL)
	siteContentSvc := service.NewSiteContentService(siteContentRepo, rdb, cfg.SiteContentCacheTTL)
	seedSvc := service.NewSeedService(contactRepo, productRepo, txRepo, bookingRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	sessionH := handler.NewSessionHandler(sessionSvc, seedSvc)
	contactsH := handler.NewContactsHandler(contactSvc)
	productsH := handler.NewProductsHandler(productSvc)
	transactionsH := handler.NewTransactionsHandler(txSvc)
	bookingsH := handler.NewBookingsHandler(bookingSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	siteContentH := handler.NewSiteContentHandler(siteContentSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(appDB, rdb))
	r.GET("/v1/site-content/:key", siteContentH.GetPublic)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/signup", middleware.LoginRateLimiter(), authH.Signup)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Session init needs only an identity: it is the call that creates
	// the tenant binding in the first place.
	r.POST("/v1/session/init", jwtMW, sessionH.Init)

	// Everything below requires a resolved tenant.
	v1 := r.Group("/v1", jwtMW, middleware.RequireTenant(tenantLookup(sessionRepo)))
	{
		v1.GET("/tenant", sessionH.GetTenant)
		v1.PUT("/tenant", sessionH.UpdateTenant)
		v1.POST("/tenant/seed", sessionH.SeedDemo)

		v1.GET("/dashboard", dashboardH.Summary)

		contacts := v1.Group("/contacts")
		{
			contacts.POST("", contactsH.Create)
			contacts.GET("", contactsH.List)
			contacts.GET("/:id", contactsH.Get)
			contacts.PUT("/:id", contactsH.Update)
			contacts.DELETE("/:id", contactsH.Delete)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.PATCH("/:id/stock", productsH.AdjustStock)
			products.DELETE("/:id", productsH.Delete)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.POST("", transactionsH.Create)
			transactions.GET("", transactionsH.List)
			transactions.GET("/:id", transactionsH.Get)
			transactions.PATCH("/:id/status", transactionsH.UpdateStatus)
			transactions.DELETE("/:id", transactionsH.Delete)
		}

		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingsH.Create)
			bookings.GET("", bookingsH.List)
			bookings.GET("/:id", bookingsH.Get)
			bookings.PATCH("/:id/status", bookingsH.UpdateStatus)
			bookings.DELETE("/:id", bookingsH.Delete)
		}

		siteContent := v1.Group("/site-content")
		{
			siteContent.GET("", siteContentH.ListOwn)
			siteContent.PUT("/:key", siteContentH.Upsert)
			siteContent.DELETE("/:key", siteContentH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// tenantLookup resolves an identity to its tenant through the profile
// row. RequireTenant runs on every tenant-scoped request, so the read
// is a single indexed lookup on the restricted handle.
func tenantLookup(repo repository.SessionRepository) middleware.TenantLookup {
	return func(ctx context.Context, sc tenant.Scope) (uuid.UUID, error) {
		profile, err := repo.ResolveProfile(ctx, sc)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, nil
			}
			return uuid.Nil, err
		}
		return profile.TenantID, nil
	}
}
