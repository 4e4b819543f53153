package dto

import "encoding/json"

type UpsertSiteContentRequest struct {
	Content json.RawMessage `json:"content" validate:"required"`
}

type SiteContentResponse struct {
	Key       string          `json:"key"`
	TenantID  *string         `json:"tenant_id"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt string          `json:"updated_at"`
}
