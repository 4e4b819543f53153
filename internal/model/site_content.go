package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SiteContent is a keyed structured document per tenant. A nil TenantID
// marks global content. Reads are public to any caller regardless of
// tenant — the one deliberate exception to the isolation rule; writes
// remain tenant-scoped.
type SiteContent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  *uuid.UUID     `gorm:"type:uuid;index;uniqueIndex:uni_site_content_tenant_key"`
	Key       string         `gorm:"not null;uniqueIndex:uni_site_content_tenant_key"`
	Content   datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SiteContent) TableName() string { return "site_content" }
