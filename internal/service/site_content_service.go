package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"argenbiz/internal/apierror"
	"argenbiz/internal/dto"
	"argenbiz/internal/model"
	"argenbiz/internal/repository"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SiteContentService serves keyed content blocks. Public reads run
// under the anonymous scope and are cached; writes are tenant-scoped
// and bust the cache for the touched key.
type SiteContentService interface {
	GetPublic(ctx context.Context, tenantID *uuid.UUID, key string) (*dto.SiteContentResponse, error)
	ListOwn(ctx context.Context, sc tenant.Scope) ([]dto.SiteContentResponse, error)
	Upsert(ctx context.Context, sc tenant.Scope, key string, req dto.UpsertSiteContentRequest) (*dto.SiteContentResponse, error)
	Delete(ctx context.Context, sc tenant.Scope, key string) error
}

type siteContentService struct {
	repo     repository.SiteContentRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewSiteContentService(repo repository.SiteContentRepository, rdb *redis.Client, cacheTTLSeconds int) SiteContentService {
	return &siteContentService{
		repo:     repo,
		rdb:      rdb,
		cacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
	}
}

func siteContentCacheKey(tenantID *uuid.UUID, key string) string {
	if tenantID == nil {
		return "site_content:global:" + key
	}
	return "site_content:" + tenantID.String() + ":" + key
}

func (s *siteContentService) GetPublic(ctx context.Context, tenantID *uuid.UUID, key string) (*dto.SiteContentResponse, error) {
	cacheKey := siteContentCacheKey(tenantID, key)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached dto.SiteContentResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	content, err := s.repo.Get(ctx, tenant.Anonymous, tenantID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	resp := siteContentToResponse(content)

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el contenido")
			}
		}
	}
	return resp, nil
}

func (s *siteContentService) ListOwn(ctx context.Context, sc tenant.Scope) ([]dto.SiteContentResponse, error) {
	contents, err := s.repo.ListForTenant(ctx, sc, sc.TenantID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SiteContentResponse, 0, len(contents))
	for i := range contents {
		resp = append(resp, *siteContentToResponse(&contents[i]))
	}
	return resp, nil
}

func (s *siteContentService) Upsert(ctx context.Context, sc tenant.Scope, key string, req dto.UpsertSiteContentRequest) (*dto.SiteContentResponse, error) {
	tenantID := sc.TenantID
	content := &model.SiteContent{
		TenantID: &tenantID,
		Key:      key,
		Content:  datatypes.JSON(req.Content),
	}
	if err := s.repo.Upsert(ctx, sc, content); err != nil {
		return nil, err
	}
	s.bustCache(ctx, &tenantID, key)
	return siteContentToResponse(content), nil
}

func (s *siteContentService) Delete(ctx context.Context, sc tenant.Scope, key string) error {
	if err := s.repo.Delete(ctx, sc, sc.TenantID, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.ErrNotFound
		}
		return err
	}
	tenantID := sc.TenantID
	s.bustCache(ctx, &tenantID, key)
	return nil
}

func (s *siteContentService) bustCache(ctx context.Context, tenantID *uuid.UUID, key string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, siteContentCacheKey(tenantID, key)).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la cache de contenido")
	}
}

func siteContentToResponse(c *model.SiteContent) *dto.SiteContentResponse {
	var tenantID *string
	if c.TenantID != nil {
		s := c.TenantID.String()
		tenantID = &s
	}
	return &dto.SiteContentResponse{
		Key:       c.Key,
		TenantID:  tenantID,
		Content:   []byte(c.Content),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
