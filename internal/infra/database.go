package infra

import (
	"context"

	"argenbiz/internal/tenant"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The service holds two capability-scoped handles, never a single
// client with a privilege toggle:
//
//   - the admin handle connects as the schema owner (BYPASSRLS) and is
//     used only by migrations, seeding, and the auth identity store;
//   - the app handle connects as the restricted application role, so
//     every query it issues is filtered by the row-level policies.

// NewAdminDatabase opens the elevated GORM connection.
func NewAdminDatabase(dsn string) (*gorm.DB, error) {
	return open(dsn, 10, 2)
}

// NewAppDatabase opens the restricted connection used for all
// tenant-scoped request traffic.
func NewAppDatabase(dsn string) (*AppDB, error) {
	db, err := open(dsn, 25, 5)
	if err != nil {
		return nil, err
	}
	return &AppDB{db: db}, nil
}

func open(dsn string, maxOpen, maxIdle int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	return db, nil
}

// AppDB wraps the restricted connection. All access goes through Scoped
// so that no query can run without an identity bound to its transaction.
type AppDB struct {
	db *gorm.DB
}

// Ping checks the underlying connection. Used by the health endpoint.
func (d *AppDB) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Scoped runs fn inside a transaction whose connection carries the
// caller's identity: set_config('app.identity', …, true) is transaction-
// local, and the row-level policies read it back via app_identity().
// An anonymous scope binds the empty string, which app_identity()
// resolves to NULL, so the policies match no tenant-scoped rows.
func (d *AppDB) Scoped(ctx context.Context, sc tenant.Scope, fn func(tx *gorm.DB) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ident := ""
		if !sc.IsAnonymous() {
			ident = sc.Identity.String()
		}
		if err := tx.Exec("SELECT set_config('app.identity', ?, true)", ident).Error; err != nil {
			return err
		}
		return fn(tx)
	})
}
