package dto

// ─── Filter / List ──────────────────────────────────────────────────────────

// ContactFilter is bound from the query string of GET /v1/contacts.
type ContactFilter struct {
	// Role narrows by flag: "client" | "provider" | "all" (default).
	Role  string `form:"role,default=all"`
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ContactListResponse struct {
	Data  []ContactResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateContactRequest struct {
	Name         string  `json:"name" validate:"required"`
	CUIT         *string `json:"cuit"`
	TaxCondition string  `json:"tax_condition"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	IsClient     bool    `json:"is_client"`
	IsProvider   bool    `json:"is_provider"`
}

type UpdateContactRequest struct {
	Name         string  `json:"name"`
	CUIT         *string `json:"cuit"`
	TaxCondition string  `json:"tax_condition"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	IsClient     *bool   `json:"is_client"`
	IsProvider   *bool   `json:"is_provider"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ContactResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CUIT         *string `json:"cuit"`
	TaxCondition string  `json:"tax_condition"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	IsClient     bool    `json:"is_client"`
	IsProvider   bool    `json:"is_provider"`
}
