// Package tenant defines the explicit scope value carried through every
// tenant-scoped data-access call. It replaces any ambient module-level
// tenant state: test code can inject arbitrary scopes without touching
// process-wide variables.
package tenant

import "github.com/google/uuid"

// Scope identifies the caller for row-level isolation purposes.
// Identity is the authenticated user ID (= profile ID); the storage
// layer resolves it to a tenant on every query, so TenantID here is
// advisory: it fills new rows' tenant column, and the database policies
// reject it if it does not match the caller's real tenant. A zero
// Identity is valid and matches no rows (fail-closed).
type Scope struct {
	Identity uuid.UUID
	TenantID uuid.UUID
}

// NewScope builds a scope for the given identity.
func NewScope(identity uuid.UUID) Scope { return Scope{Identity: identity} }

// WithTenant returns a copy of the scope carrying the resolved tenant.
func (s Scope) WithTenant(tenantID uuid.UUID) Scope {
	s.TenantID = tenantID
	return s
}

// Anonymous is the unauthenticated scope: no identity, no tenant.
// Under row-level isolation it can only see public rows.
var Anonymous = Scope{}

// IsAnonymous reports whether the scope carries no identity.
func (s Scope) IsAnonymous() bool { return s.Identity == uuid.Nil }

// HasTenant reports whether the scope has a resolved tenant binding.
func (s Scope) HasTenant() bool { return s.TenantID != uuid.Nil }
