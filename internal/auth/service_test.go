package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/nairmotors/dealerbook-backend/pkg/auth"
	"github.com/nairmotors/dealerbook-backend/pkg/config"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
	"github.com/nairmotors/dealerbook-backend/pkg/security"
)

type fakeUserRepo struct {
	user      *models.User
	lastLogin *time.Time
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user == nil || f.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	f.lastLogin = &at
	return nil
}

type fakeLimiter struct {
	allowed bool
	scopes  []string
}

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, _ int64, _ time.Duration) (bool, int64, error) {
	f.scopes = append(f.scopes, scope)
	return f.allowed, 1, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "dealerbook", ExpirationMinutes: 30}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hashed
}

func TestServiceLogin(t *testing.T) {
	password := "owner-secret"
	repo := &fakeUserRepo{user: &models.User{
		ID:           uuid.New(),
		Email:        "owner@dealerbook.in",
		PasswordHash: mustHashPassword(t, password),
		Name:         "Owner",
		Role:         "admin",
		IsActive:     true,
	}}
	cfg := testJWTConfig()

	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: cfg})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Owner@Dealerbook.in",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != repo.user.ID {
		t.Fatalf("expected user id claim %s, got %s", repo.user.ID, claims.UserID)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected role claim %s", claims.Role)
	}
	if repo.lastLogin == nil {
		t.Fatal("expected last login to be recorded")
	}
	if resp.User.Email != repo.user.Email {
		t.Fatalf("unexpected user summary email %s", resp.User.Email)
	}
}

func TestServiceLoginRejectsBadPassword(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		ID:           uuid.New(),
		Email:        "owner@dealerbook.in",
		PasswordHash: mustHashPassword(t, "right"),
		IsActive:     true,
	}}
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "owner@dealerbook.in", Password: "wrong"})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if repo.lastLogin != nil {
		t.Fatal("failed login must not record a last login")
	}
}

func TestServiceLoginRejectsInactiveUser(t *testing.T) {
	password := "secret"
	repo := &fakeUserRepo{user: &models.User{
		ID:           uuid.New(),
		Email:        "former@dealerbook.in",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     false,
	}}
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "former@dealerbook.in", Password: password})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginUnknownUserIsUnauthorized(t *testing.T) {
	svc, err := NewService(ServiceParams{UserRepo: &fakeUserRepo{}, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@dealerbook.in", Password: "x"})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginRateLimited(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		ID:           uuid.New(),
		Email:        "owner@dealerbook.in",
		PasswordHash: mustHashPassword(t, "secret"),
		IsActive:     true,
	}}
	limiter := &fakeLimiter{allowed: false}
	svc, err := NewService(ServiceParams{
		UserRepo:  repo,
		Limiter:   limiter,
		JWTConfig: testJWTConfig(),
		RateLimit: config.AuthRateLimitConfig{
			LoginWindow:     time.Minute,
			LoginEmailLimit: 5,
			LoginIPLimit:    20,
		},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "owner@dealerbook.in",
		Password: "secret",
		RemoteIP: "10.0.0.1",
	})
	if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if len(limiter.scopes) == 0 {
		t.Fatal("expected the limiter to be consulted")
	}
}
