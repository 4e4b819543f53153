// cmd/migrate — creates the schema, the restricted application role,
// and the full row-level isolation model (helper functions, policies,
// bootstrap procedure). Idempotent: safe to re-run on a live database.
// Must connect as the schema owner.
package main

import (
	"os"
	"time"

	"argenbiz/internal/config"
	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/rls"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewAdminDatabase(cfg.AdminDatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		log.Fatal().Err(err).Msg("failed to install pgcrypto")
	}

	log.Info().Msg("migrating schema")
	if err := db.AutoMigrate(
		&model.User{},
		&model.Tenant{},
		&model.Profile{},
		&model.Contact{},
		&model.Product{},
		&model.Transaction{},
		&model.Booking{},
		&model.SiteContent{},
	); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	log.Info().Str("role", rls.AppRole).Msg("ensuring application role")
	if err := rls.EnsureAppRole(db, cfg.AppDBPassword); err != nil {
		log.Fatal().Err(err).Msg("role setup failed")
	}

	log.Info().Msg("installing row-level isolation")
	if err := rls.Install(db); err != nil {
		log.Fatal().Err(err).Msg("isolation install failed")
	}

	log.Info().Msg("migration complete")
}
