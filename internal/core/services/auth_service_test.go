package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/core/services"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenFixture() (*MockUserRepository, *config.Config) {
	cfg := &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "farm-ledger",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	return new(MockUserRepository), cfg
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	repo, cfg := newTokenFixture()
	tokens := services.NewTokenService(cfg, services.NewUserService(repo, new(MockCategoryRepository)))

	token, expiresAt, err := tokens.GenerateAccessToken(context.Background(), &domain.User{UserID: "u1"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := utils.ParseAndValidateJWT(token, cfg.JWTSecret, cfg.JWTIssuer)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
}

func TestTokenService_ValidateRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, cfg := newTokenFixture()
	tokens := services.NewTokenService(cfg, services.NewUserService(repo, new(MockCategoryRepository)))

	raw, expiry, err := tokens.GenerateRefreshToken(ctx, &domain.User{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, raw, 64)

	past := time.Now().Add(-time.Minute)
	repo.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", RefreshTokenHash: utils.HashRefreshToken(raw), RefreshTokenExpiryTime: &expiry}, nil)
	repo.On("FindUserByID", ctx, "expired").Return(&domain.User{UserID: "expired", RefreshTokenHash: utils.HashRefreshToken(raw), RefreshTokenExpiryTime: &past}, nil)
	repo.On("FindUserByID", ctx, "none").Return(&domain.User{UserID: "none"}, nil)
	repo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	user, err := tokens.ValidateAndParseRefreshToken(ctx, "u1", raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)

	_, err = tokens.ValidateAndParseRefreshToken(ctx, "u1", "not-the-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = tokens.ValidateAndParseRefreshToken(ctx, "expired", raw)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired)

	_, err = tokens.ValidateAndParseRefreshToken(ctx, "none", raw)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = tokens.ValidateAndParseRefreshToken(ctx, "ghost", raw)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
