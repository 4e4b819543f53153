// cmd/seed — loads the demo dataset into the tenant of an existing
// user, bootstrapping the tenant first if the user has none yet.
// Usage: go run ./cmd/seed -email admin@example.com
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"argenbiz/internal/config"
	"argenbiz/internal/infra"
	"argenbiz/internal/repository"
	"argenbiz/internal/service"
	"argenbiz/internal/tenant"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	email := flag.String("email", "", "email of the user whose tenant receives the demo data")
	tenantName := flag.String("tenant", "Negocio Demo", "tenant name used if a bootstrap is needed")
	flag.Parse()
	if *email == "" {
		log.Fatal().Msg("-email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	adminDB, err := infra.NewAdminDatabase(cfg.AdminDatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres (admin)")
	}
	appDB, err := infra.NewAppDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres (app)")
	}

	ctx := context.Background()

	userRepo := repository.NewUserRepository(adminDB)
	user, err := userRepo.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatal().Str("email", *email).Err(err).Msg("user not found; sign up first")
	}
	sc := tenant.NewScope(user.ID)

	// The seed goes through the restricted handle like any client
	// would, so a misconfigured isolation layer fails loudly here
	// instead of silently writing cross-tenant rows.
	sessionRepo := repository.NewSessionRepository(appDB)
	profile, err := sessionRepo.ResolveProfile(ctx, sc)
	if err != nil {
		fullName := *email
		if user.FullName != nil {
			fullName = *user.FullName
		}
		result, berr := sessionRepo.InitializeTenant(ctx, sc, *tenantName, fullName)
		if berr != nil {
			log.Fatal().Err(berr).Msg("tenant bootstrap failed")
		}
		if !result.Success {
			log.Fatal().Str("error", result.Error).Msg("tenant bootstrap rejected")
		}
		profile, err = sessionRepo.ResolveProfile(ctx, sc)
		if err != nil {
			log.Fatal().Err(err).Msg("profile unresolvable after bootstrap")
		}
	}
	sc = sc.WithTenant(profile.TenantID)

	contactRepo := repository.NewContactRepository(appDB)
	productRepo := repository.NewProductRepository(appDB)
	txRepo := repository.NewTransactionRepository(appDB)
	bookingRepo := repository.NewBookingRepository(appDB)
	seedSvc := service.NewSeedService(contactRepo, productRepo, txRepo, bookingRepo, nil)

	if err := seedSvc.SeedDemoData(ctx, sc); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Str("tenant_id", profile.TenantID.String()).Msg("demo data ready")
}
