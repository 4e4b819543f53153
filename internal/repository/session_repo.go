package repository

import (
	"context"
	"encoding/json"
	"errors"

	"argenbiz/internal/apierror"
	"argenbiz/internal/infra"
	"argenbiz/internal/model"
	"argenbiz/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// BootstrapResult is the structured outcome of the bootstrap procedure.
type BootstrapResult struct {
	Success  bool       `json:"success"`
	TenantID *uuid.UUID `json:"tenant_id"`
	Error    string     `json:"error"`
}

// SessionRepository resolves the caller's profile+tenant binding and
// invokes the bootstrap/repair procedure. Both run on the restricted
// handle: resolution is filtered by the profile policies, and the
// procedure's SECURITY DEFINER body is its only privilege escalation.
type SessionRepository interface {
	ResolveProfile(ctx context.Context, sc tenant.Scope) (*model.Profile, error)
	InitializeTenant(ctx context.Context, sc tenant.Scope, tenantName, fullName string) (*BootstrapResult, error)
}

type sessionRepo struct{ db *infra.AppDB }

func NewSessionRepository(db *infra.AppDB) SessionRepository { return &sessionRepo{db: db} }

// ResolveProfile loads the caller's profile joined with its tenant.
// A missing profile and a profile excluded by policy are the same
// gorm.ErrRecordNotFound; a dangling tenant reference loads the profile
// with a nil Tenant.
func (r *sessionRepo) ResolveProfile(ctx context.Context, sc tenant.Scope) (*model.Profile, error) {
	var p model.Profile
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Preload("Tenant").Where("id = ?", sc.Identity).First(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sessionRepo) InitializeTenant(ctx context.Context, sc tenant.Scope, tenantName, fullName string) (*BootstrapResult, error) {
	var raw []byte
	err := r.db.Scoped(ctx, sc, func(tx *gorm.DB) error {
		return tx.Raw("SELECT initialize_tenant_for_user(?, ?)", tenantName, fullName).Scan(&raw).Error
	})
	if err != nil {
		// SQLSTATE 42883: undefined function — the procedure was never
		// installed. Surfaced as the distinct configuration error so the
		// caller can show remediation instead of a generic failure.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42883" {
			return nil, apierror.ErrProcedureNotInstalled
		}
		return nil, err
	}

	var result BootstrapResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
