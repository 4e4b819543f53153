package dto

// InitSessionRequest carries the proposed names used only when the
// caller has no tenant yet and the bootstrap procedure must run. Both
// are free text; no uniqueness is enforced.
type InitSessionRequest struct {
	TenantName string `json:"tenant_name"`
	FullName   string `json:"full_name"`
}

// TenantInfo is the cached tenant snapshot of a resolved session.
type TenantInfo struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CUIT         string  `json:"cuit"`
	TaxCondition string  `json:"tax_condition"`
	Address      *string `json:"address,omitempty"`
}

// SessionResponse reports the outcome of a session resolution pass.
// State is one of "ready" | "bootstrapped" | "error".
type SessionResponse struct {
	State  string      `json:"state"`
	Tenant *TenantInfo `json:"tenant,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

// ─── Tenant self-management ─────────────────────────────────────────────────

type UpdateTenantRequest struct {
	Name         string  `json:"name"`
	CUIT         string  `json:"cuit"`
	TaxCondition string  `json:"tax_condition"`
	Address      *string `json:"address"`
}
