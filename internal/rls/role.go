package rls

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// EnsureAppRole creates the restricted application role if missing and
// grants it exactly the table access the policies then narrow down.
// The users table is deliberately absent from the grant list: the
// identity store is reachable only through the elevated handle.
func EnsureAppRole(db *gorm.DB, password string) error {
	create := fmt.Sprintf(`
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = '%s') THEN
    CREATE ROLE %s LOGIN PASSWORD '%s';
  END IF;
END $$`, AppRole, AppRole, strings.ReplaceAll(password, "'", "''"))
	if err := db.Exec(create).Error; err != nil {
		return fmt.Errorf("create role %s: %w", AppRole, err)
	}

	grants := []string{
		fmt.Sprintf("GRANT USAGE ON SCHEMA public TO %s", AppRole),
		fmt.Sprintf("GRANT SELECT, INSERT, UPDATE, DELETE ON tenants, profiles, contacts, products, transactions, bookings, site_content TO %s", AppRole),
	}
	for _, g := range grants {
		if err := db.Exec(g).Error; err != nil {
			return fmt.Errorf("grant to %s: %w", AppRole, err)
		}
	}
	return nil
}
