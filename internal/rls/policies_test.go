package rls

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicySQL(t *testing.T) {
	p := Policy{
		Table:     "contacts",
		Name:      "Tenant isolation for contacts",
		Command:   "ALL",
		Using:     tenantPredicate,
		WithCheck: tenantPredicate,
	}

	assert.Equal(t,
		`CREATE POLICY "Tenant isolation for contacts" ON contacts FOR ALL TO argenbiz_app`+
			` USING (tenant_id = get_tenant_id()) WITH CHECK (tenant_id = get_tenant_id())`,
		p.CreateSQL())
	assert.Equal(t, `DROP POLICY IF EXISTS "Tenant isolation for contacts" ON contacts`, p.DropSQL())
}

func TestPolicySQL_InsertOnly(t *testing.T) {
	p := Policy{
		Table:     "tenants",
		Name:      "Users can create tenants",
		Command:   "INSERT",
		WithCheck: "app_identity() IS NOT NULL",
	}

	sql := p.CreateSQL()
	assert.NotContains(t, sql, "USING")
	assert.Contains(t, sql, "WITH CHECK (app_identity() IS NOT NULL)")
}

func TestPolicies_CubrenTablasParticionadas(t *testing.T) {
	byTable := make(map[string][]Policy)
	for _, p := range Policies() {
		byTable[p.Table] = append(byTable[p.Table], p)
	}

	// Every tenant-scoped table carries exactly one ALL policy with
	// matching read and write predicates.
	for _, table := range TenantScopedTables {
		ps := byTable[table]
		require.Len(t, ps, 1, table)
		assert.Equal(t, "ALL", ps[0].Command)
		assert.Equal(t, ps[0].Using, ps[0].WithCheck)
		assert.Equal(t, tenantPredicate, ps[0].Using)
	}

	// tenants and profiles get no DELETE policy: removal happens only
	// through the elevated handle.
	for _, table := range []string{"tenants", "profiles"} {
		for _, p := range byTable[table] {
			assert.NotEqual(t, "DELETE", p.Command, table)
		}
	}

	// site_content reads are unconditionally public.
	var publicRead bool
	for _, p := range byTable["site_content"] {
		if p.Command == "SELECT" && p.Using == "true" {
			publicRead = true
		}
	}
	assert.True(t, publicRead)
}

func TestRLSTables_IncluyeUsers(t *testing.T) {
	tables := RLSTables()
	assert.Contains(t, tables, "users")

	// users gets row security enabled but zero policies: the app role
	// can never touch the identity store.
	for _, p := range Policies() {
		assert.NotEqual(t, "users", p.Table)
	}
}

func TestProcedimientoBootstrap_Definicion(t *testing.T) {
	assert.Contains(t, initializeTenantFn, "SECURITY DEFINER")
	assert.Contains(t, initializeTenantFn, "FOR UPDATE")
	assert.Contains(t, initializeTenantFn, "app_identity()")
	// The identity is never an argument of the procedure.
	assert.False(t, strings.Contains(initializeTenantFn, "p_user_id"))
}
