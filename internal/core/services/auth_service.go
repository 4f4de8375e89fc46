package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
)

// refreshTokenBytes yields a 64 character hex token.
const refreshTokenBytes = 32

// tokenService issues access tokens and validates refresh tokens against the
// hash stored on the user.
type tokenService struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserSvcFacade
	now         func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
		now:         time.Now,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := s.now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token. Only its hash is
// ever stored.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate secure random string for refresh token: %w", err)
	}
	return rawRefreshToken, s.now().Add(s.cfg.RefreshTokenExpiryDuration), nil
}

// ValidateAndParseRefreshToken hashes the presented token and compares it
// with the user's stored hash and expiry.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		s.LogDebug(ctx, "User has no refresh token", slog.String("user_id", userID))
		return nil, apperrors.ErrUnauthorized
	}
	if s.now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		s.LogDebug(ctx, "Refresh token mismatch", slog.String("user_id", userID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
