package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/nairmotors/dealerbook-backend/pkg/auth"
	"github.com/nairmotors/dealerbook-backend/pkg/config"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
	"github.com/nairmotors/dealerbook-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// rateLimiter is the fixed-window limiter surface of pkg/redis.Client.
type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Service authenticates staff users and issues access tokens.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type service struct {
	users   userRepository
	limiter rateLimiter
	jwtCfg  config.JWTConfig
	rateCfg config.AuthRateLimitConfig
	logg    *logger.Logger
}

// ServiceParams bundles the dependencies required to build an auth service.
// Limiter and logger are optional.
type ServiceParams struct {
	UserRepo  userRepository
	Limiter   rateLimiter
	JWTConfig config.JWTConfig
	RateLimit config.AuthRateLimitConfig
	Logger    *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:   params.UserRepo,
		limiter: params.Limiter,
		jwtCfg:  params.JWTConfig,
		rateCfg: params.RateLimit,
		logg:    params.Logger,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.allowAttempt(ctx, req); err != nil {
		return nil, err
	}

	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "mint jwt")
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "record login")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": user.ID.String()})
		s.logg.Info(logCtx, "user logged in")
	}
	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   now.Add(s.jwtCfg.Expiration()),
		User:        FromModel(user),
	}, nil
}

// allowAttempt applies per-email and per-IP fixed windows. A limiter outage
// fails open so Redis downtime does not lock everyone out.
func (s *service) allowAttempt(ctx context.Context, req LoginRequest) error {
	if s.limiter == nil {
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && s.rateCfg.LoginEmailLimit > 0 {
		allowed, _, err := s.limiter.FixedWindowAllow(ctx, "login:email:"+email,
			int64(s.rateCfg.LoginEmailLimit), s.rateCfg.LoginWindow)
		if err == nil && !allowed {
			return apperrors.New(apperrors.CodeRateLimit, "too many login attempts")
		}
	}
	if req.RemoteIP != "" && s.rateCfg.LoginIPLimit > 0 {
		allowed, _, err := s.limiter.FixedWindowAllow(ctx, "login:ip:"+req.RemoteIP,
			int64(s.rateCfg.LoginIPLimit), s.rateCfg.LoginWindow)
		if err == nil && !allowed {
			return apperrors.New(apperrors.CodeRateLimit, "too many login attempts")
		}
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" || password == "" {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}
