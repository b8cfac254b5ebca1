package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-vote/internal/auth"
	"github.com/spec-kit/movie-vote/internal/config"
	"github.com/spec-kit/movie-vote/internal/domain"
	"github.com/spec-kit/movie-vote/internal/identity"
	"github.com/spec-kit/movie-vote/internal/repository"
)

// AuthService coordinates the login flow: provider credential in, local
// session credential out.
type AuthService struct {
	users     repository.UserRepository
	referrals *ReferralService
	verifier  identity.Verifier
	tokenMgr  *auth.TokenManager
	logger    *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, referrals *ReferralService, verifier identity.Verifier, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		referrals: referrals,
		verifier:  verifier,
		tokenMgr:  auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
		logger:    logger,
	}
}

// Login verifies the provider credential, resolves or creates the local
// user (creation delegates to the referral engine) and issues a session
// token.
func (s *AuthService) Login(ctx context.Context, credential, inviteCode string) (*domain.User, string, time.Time, error) {
	claim, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		if !errors.Is(err, identity.ErrVerificationFailed) {
			err = fmt.Errorf("%w: %v", identity.ErrVerificationFailed, err)
		}
		return nil, "", time.Time{}, err
	}

	user, err := s.users.GetByEmail(ctx, claim.Email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, err
		}
		user, err = s.referrals.CreateUser(ctx, claim, inviteCode)
		if err != nil {
			return nil, "", time.Time{}, err
		}
		s.logger.Info("user registered",
			zap.String("user_id", user.ID),
			zap.String("my_code", user.MyCode))
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// GetUser loads a voter for the /me endpoint.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
