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

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// SessionService resolves the caller's tenant binding and bootstraps or
// repairs it when missing. Resolution is the first thing every
// authenticated client does, so results are cached in Redis and
// concurrent resolutions for the same identity are collapsed into one
// database pass.
type SessionService interface {
	Init(ctx context.Context, sc tenant.Scope, req dto.InitSessionRequest) (*dto.SessionResponse, error)
	Invalidate(ctx context.Context, sc tenant.Scope) error
	GetTenant(ctx context.Context, sc tenant.Scope) (*dto.TenantInfo, error)
	UpdateTenant(ctx context.Context, sc tenant.Scope, req dto.UpdateTenantRequest) (*dto.TenantInfo, error)
}

type sessionService struct {
	repo       repository.SessionRepository
	tenantRepo repository.TenantRepository
	rdb        *redis.Client
	cacheTTL   time.Duration
	group      singleflight.Group
}

func NewSessionService(
	repo repository.SessionRepository,
	tenantRepo repository.TenantRepository,
	rdb *redis.Client,
	cacheTTLSeconds int,
) SessionService {
	return &sessionService{
		repo:       repo,
		tenantRepo: tenantRepo,
		rdb:        rdb,
		cacheTTL:   time.Duration(cacheTTLSeconds) * time.Second,
	}
}

func sessionCacheKey(sc tenant.Scope) string {
	return "session:" + sc.Identity.String()
}

// Init resolves the session, bootstrapping the tenant when the caller
// has none. Concurrent calls for the same identity share a single
// resolution: double-clicks and parallel tabs must not race the
// bootstrap procedure against itself.
func (s *sessionService) Init(ctx context.Context, sc tenant.Scope, req dto.InitSessionRequest) (*dto.SessionResponse, error) {
	if sc.IsAnonymous() {
		return nil, apierror.Invalid("usuario no autenticado")
	}

	if cached := s.readCache(ctx, sc); cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do(sc.Identity.String(), func() (interface{}, error) {
		return s.resolve(ctx, sc, req)
	})
	if err != nil {
		return nil, err
	}
	resp := v.(*dto.SessionResponse)
	if resp.State != "error" {
		s.writeCache(ctx, sc, resp)
	}
	return resp, nil
}

// resolve is the single-flight body: look up the profile+tenant pair,
// and when it is absent or dangling run the bootstrap procedure and
// look again. A second miss after a successful bootstrap means the
// database is rejecting what the procedure claims to have written, so
// it is reported as an error rather than retried.
func (s *sessionService) resolve(ctx context.Context, sc tenant.Scope, req dto.InitSessionRequest) (*dto.SessionResponse, error) {
	profile, err := s.repo.ResolveProfile(ctx, sc)
	if err == nil && profile.Tenant != nil {
		return &dto.SessionResponse{State: "ready", Tenant: tenantToInfo(profile.Tenant)}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Missing profile, or profile with a dangling tenant reference.
	// Both are repaired by the same procedure.
	result, err := s.repo.InitializeTenant(ctx, sc, defaultTenantName(req), req.FullName)
	if err != nil {
		if errors.Is(err, apierror.ErrProcedureNotInstalled) {
			return &dto.SessionResponse{State: "error", Detail: err.Error()}, nil
		}
		return nil, err
	}
	if !result.Success {
		log.Warn().Str("user_id", sc.Identity.String()).Str("error", result.Error).
			Msg("tenant bootstrap rechazado")
		return &dto.SessionResponse{State: "error", Detail: result.Error}, nil
	}

	profile, err = s.repo.ResolveProfile(ctx, sc)
	if err != nil || profile.Tenant == nil {
		log.Error().Str("user_id", sc.Identity.String()).
			Msg("perfil irresoluble despues de un bootstrap exitoso")
		return &dto.SessionResponse{
			State:  "error",
			Detail: "la sesion no pudo inicializarse; contacte al administrador",
		}, nil
	}
	return &dto.SessionResponse{State: "bootstrapped", Tenant: tenantToInfo(profile.Tenant)}, nil
}

// Invalidate drops the cached resolution so the next Init hits the
// database again. Called after anything that mutates the tenant.
func (s *sessionService) Invalidate(ctx context.Context, sc tenant.Scope) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, sessionCacheKey(sc)).Err()
}

func (s *sessionService) GetTenant(ctx context.Context, sc tenant.Scope) (*dto.TenantInfo, error) {
	t, err := s.tenantRepo.FindOwn(ctx, sc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return tenantToInfo(t), nil
}

func (s *sessionService) UpdateTenant(ctx context.Context, sc tenant.Scope, req dto.UpdateTenantRequest) (*dto.TenantInfo, error) {
	t, err := s.tenantRepo.FindOwn(ctx, sc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.CUIT != "" {
		t.CUIT = req.CUIT
	}
	if req.TaxCondition != "" {
		tc := model.TaxCondition(req.TaxCondition)
		if !tc.Valid() {
			return nil, apierror.Invalid("condicion fiscal invalida: %s", req.TaxCondition)
		}
		t.TaxCondition = tc
	}
	if req.Address != nil {
		t.Address = req.Address
	}
	if err := s.tenantRepo.Update(ctx, sc, t); err != nil {
		return nil, err
	}
	if err := s.Invalidate(ctx, sc); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la cache de sesion")
	}
	return tenantToInfo(t), nil
}

func (s *sessionService) readCache(ctx context.Context, sc tenant.Scope) *dto.SessionResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, sessionCacheKey(sc)).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.SessionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	// A cached bootstrap outcome replays as a plain ready session.
	resp.State = "ready"
	return &resp
}

func (s *sessionService) writeCache(ctx context.Context, sc tenant.Scope, resp *dto.SessionResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, sessionCacheKey(sc), raw, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo cachear la sesion")
	}
}

func defaultTenantName(req dto.InitSessionRequest) string {
	if req.TenantName != "" {
		return req.TenantName
	}
	return "Mi Negocio"
}

func tenantToInfo(t *model.Tenant) *dto.TenantInfo {
	return &dto.TenantInfo{
		ID:           t.ID.String(),
		Name:         t.Name,
		CUIT:         t.CUIT,
		TaxCondition: string(t.TaxCondition),
		Address:      t.Address,
	}
}
