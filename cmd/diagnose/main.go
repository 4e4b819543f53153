// cmd/diagnose — verifies the isolation setup of a running database:
// helper functions, bootstrap procedure, row-level security flags,
// policy counts, and the restricted role. Read-only; prints a report
// and exits non-zero when something is missing.
package main

import (
	"fmt"
	"os"
	"time"

	"argenbiz/internal/config"
	"argenbiz/internal/infra"
	"argenbiz/internal/rls"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type check struct {
	name string
	run  func(db *gorm.DB) (bool, string)
}

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

	checks := []check{
		{"role " + rls.AppRole, func(db *gorm.DB) (bool, string) {
			var n int64
			db.Raw("SELECT COUNT(*) FROM pg_roles WHERE rolname = ?", rls.AppRole).Scan(&n)
			if n == 0 {
				return false, "missing; run cmd/migrate"
			}
			return true, "present"
		}},
		{"function app_identity()", functionCheck("app_identity")},
		{"function get_tenant_id()", functionCheck("get_tenant_id")},
		{"procedure initialize_tenant_for_user", functionCheck("initialize_tenant_for_user")},
	}
	for _, table := range rls.RLSTables() {
		table := table
		checks = append(checks, check{"row security on " + table, func(db *gorm.DB) (bool, string) {
			var enabled bool
			db.Raw("SELECT relrowsecurity FROM pg_class WHERE relname = ?", table).Scan(&enabled)
			if !enabled {
				return false, "DISABLED; run cmd/migrate"
			}
			var n int64
			db.Raw("SELECT COUNT(*) FROM pg_policies WHERE tablename = ?", table).Scan(&n)
			return true, fmt.Sprintf("enabled, %d policies", n)
		}})
	}

	failed := 0
	for _, c := range checks {
		ok, detail := c.run(db)
		if ok {
			log.Info().Str("check", c.name).Msg(detail)
		} else {
			log.Error().Str("check", c.name).Msg(detail)
			failed++
		}
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Msg("diagnosis found problems")
		os.Exit(1)
	}
	log.Info().Msg("all checks passed")
}

func functionCheck(name string) func(db *gorm.DB) (bool, string) {
	return func(db *gorm.DB) (bool, string) {
		var n int64
		db.Raw("SELECT COUNT(*) FROM pg_proc WHERE proname = ?", name).Scan(&n)
		if n == 0 {
			return false, "missing; run cmd/migrate"
		}
		return true, "installed"
	}
}
