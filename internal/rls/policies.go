// Package rls defines the row-level isolation model: the SQL helper
// functions, the per-table access policies, and the tenant bootstrap
// procedure. The predicates are evaluated by Postgres itself on every
// query issued through the restricted application role, so a buggy or
// malicious query cannot cross tenant boundaries.
package rls

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// AppRole is the restricted database role the request path connects as.
// It is subject to every policy below; the elevated role is not.
const AppRole = "argenbiz_app"

// TenantScopedTables are the tables under the universal isolation rule:
// one ALL policy with identical USING and WITH CHECK predicates, so a
// caller can neither read nor insert rows naming a foreign tenant.
var TenantScopedTables = []string{"contacts", "products", "transactions", "bookings"}

// Policy is one row-level access predicate on a table.
type Policy struct {
	Table     string
	Name      string
	Command   string // SELECT | INSERT | UPDATE | DELETE | ALL
	Using     string // empty for INSERT-only policies
	WithCheck string // empty when the command cannot insert/update
}

// DropSQL removes a previous definition of the policy, if any.
func (p Policy) DropSQL() string {
	return fmt.Sprintf(`DROP POLICY IF EXISTS %q ON %s`, p.Name, p.Table)
}

// CreateSQL renders the CREATE POLICY statement.
func (p Policy) CreateSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE POLICY %q ON %s FOR %s TO %s", p.Name, p.Table, p.Command, AppRole)
	if p.Using != "" {
		fmt.Fprintf(&b, " USING (%s)", p.Using)
	}
	if p.WithCheck != "" {
		fmt.Fprintf(&b, " WITH CHECK (%s)", p.WithCheck)
	}
	return b.String()
}

// tenantPredicate is the universal partition predicate. get_tenant_id()
// resolves the caller's identity to a tenant through the profiles table
// and returns NULL for a caller with no profile, so the comparison
// matches no rows (fail-closed).
const tenantPredicate = "tenant_id = get_tenant_id()"

// Policies returns every policy of the isolation model, in install order.
func Policies() []Policy {
	var out []Policy

	for _, table := range TenantScopedTables {
		out = append(out, Policy{
			Table:     table,
			Name:      "Tenant isolation for " + table,
			Command:   "ALL",
			Using:     tenantPredicate,
			WithCheck: tenantPredicate,
		})
	}

	// tenants: any authenticated identity may create one (that is how a
	// fresh sign-up gets a company), but can only see or update the
	// tenant its own profile belongs to.
	out = append(out,
		Policy{
			Table:     "tenants",
			Name:      "Users can create tenants",
			Command:   "INSERT",
			WithCheck: "app_identity() IS NOT NULL",
		},
		Policy{
			Table:   "tenants",
			Name:    "Users can view their own tenant",
			Command: "SELECT",
			Using:   "id = get_tenant_id()",
		},
		Policy{
			Table:     "tenants",
			Name:      "Users can update their own tenant",
			Command:   "UPDATE",
			Using:     "id = get_tenant_id()",
			WithCheck: "id = get_tenant_id()",
		},
	)

	// profiles: each identity manages only its own row.
	out = append(out,
		Policy{
			Table:     "profiles",
			Name:      "Users can create their own profile",
			Command:   "INSERT",
			WithCheck: "id = app_identity()",
		},
		Policy{
			Table:   "profiles",
			Name:    "Users can view their own profile",
			Command: "SELECT",
			Using:   "id = app_identity()",
		},
		Policy{
			Table:     "profiles",
			Name:      "Users can update their own profile",
			Command:   "UPDATE",
			Using:     "id = app_identity()",
			WithCheck: "id = app_identity()",
		},
	)

	// site_content: deliberately public for reads (marketing content),
	// tenant-scoped for writes. Rows with a NULL tenant are global and
	// writable by any authenticated caller.
	out = append(out,
		Policy{
			Table:   "site_content",
			Name:    "Public read access for site content",
			Command: "SELECT",
			Using:   "true",
		},
		Policy{
			Table:     "site_content",
			Name:      "Tenant can manage their site content",
			Command:   "INSERT",
			WithCheck: "tenant_id = get_tenant_id() OR (tenant_id IS NULL AND app_identity() IS NOT NULL)",
		},
		Policy{
			Table:     "site_content",
			Name:      "Tenant can update their site content",
			Command:   "UPDATE",
			Using:     "tenant_id = get_tenant_id() OR (tenant_id IS NULL AND app_identity() IS NOT NULL)",
			WithCheck: "tenant_id = get_tenant_id() OR (tenant_id IS NULL AND app_identity() IS NOT NULL)",
		},
		Policy{
			Table:     "site_content",
			Name:      "Tenant can delete their site content",
			Command:   "DELETE",
			Using:     "tenant_id = get_tenant_id()",
		},
	)

	return out
}

// RLSTables lists every table that gets ROW LEVEL SECURITY enabled.
// users is included with zero policies for the app role: only the
// elevated handle may touch the identity store.
func RLSTables() []string {
	return append(append([]string{}, TenantScopedTables...),
		"tenants", "profiles", "site_content", "users")
}

// helperFunctions are the SQL functions the predicates evaluate.
// app_identity() reads the transaction-local setting bound by the
// application; get_tenant_id() maps it to a tenant via profiles and is
// SECURITY DEFINER so the lookup itself is not blocked by the profiles
// policies.
var helperFunctions = []struct{ descr, sql string }{
	{"create app_identity()", `
CREATE OR REPLACE FUNCTION app_identity() RETURNS uuid
LANGUAGE sql STABLE
AS $$ SELECT NULLIF(current_setting('app.identity', true), '')::uuid $$`},
	{"create get_tenant_id()", `
CREATE OR REPLACE FUNCTION get_tenant_id() RETURNS uuid
LANGUAGE sql STABLE SECURITY DEFINER SET search_path = public
AS $$ SELECT tenant_id FROM profiles WHERE id = app_identity() $$`},
}

// Install enables row-level security and (re)creates all helper
// functions, policies, and the bootstrap procedure. Every statement is
// idempotent, so re-running on an already-configured database is a
// no-op. Must run on the elevated handle.
func Install(db *gorm.DB) error {
	for _, fn := range helperFunctions {
		if err := db.Exec(fn.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", fn.descr, err)
		}
	}

	for _, table := range RLSTables() {
		if err := db.Exec(fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", table)).Error; err != nil {
			return fmt.Errorf("enable RLS on %s: %w", table, err)
		}
	}

	for _, p := range Policies() {
		if err := db.Exec(p.DropSQL()).Error; err != nil {
			return fmt.Errorf("drop policy %q: %w", p.Name, err)
		}
		if err := db.Exec(p.CreateSQL()).Error; err != nil {
			return fmt.Errorf("create policy %q: %w", p.Name, err)
		}
	}

	if err := installBootstrapProcedure(db); err != nil {
		return err
	}
	return nil
}
