package service

import (
	"context"
	"testing"

	"argenbiz/internal/config"
	"argenbiz/internal/dto"
	"argenbiz/internal/model"
	"argenbiz/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users   map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestSignupYLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, authTestConfig())

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "maria@example.com", Password: "secretpass1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "maria@example.com", Password: "secretpass1",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestSignup_EmailDuplicado(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), authTestConfig())

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "maria@example.com", Password: "secretpass1",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), dto.SignupRequest{
		Email: "maria@example.com", Password: "otrapass123",
	})
	assert.ErrorContains(t, err, "ya esta registrado")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), authTestConfig())

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "maria@example.com", Password: "secretpass1",
	})
	require.NoError(t, err)

	// Wrong password and unknown email fail with the same message.
	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "maria@example.com", Password: "equivocada",
	})
	assert.ErrorContains(t, err, "credenciales invalidas")

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@example.com", Password: "secretpass1",
	})
	assert.ErrorContains(t, err, "credenciales invalidas")
}

func TestRefresh(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), authTestConfig())

	signup, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "maria@example.com", Password: "secretpass1",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), signup.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(context.Background(), "no-es-un-token")
	assert.ErrorContains(t, err, "refresh token invalido")
}
