package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/middleware"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{userService: us, tokenService: ts}
}

// registerAuthRoutes sets up the public authentication routes and logout,
// which only needs a valid access token.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.Token)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		slog.Warn("Invalid login rate limit, using 5-M", slog.String("rate", cfg.LoginRateLimit))
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	loginLimiter := middleware.GinMiddlewarize(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", loginLimiter, h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer), h.logout)
	}
}

// register godoc
// @Summary Register a new editor
// @Description Creates an editor account and seeds its default categories.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Password login
// @Description Authenticates a user and returns an access token and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// refresh godoc
// @Summary Refresh the access token
// @Description Exchanges a stored refresh token for a new access token. The refresh token is rotated.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Unknown, revoked or expired refresh token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}

	tokens, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{
		Token:                 tokens.Token,
		ExpiresAt:             tokens.ExpiresAt,
		RefreshToken:          tokens.RefreshToken,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
	})
}

// logout godoc
// @Summary Log out
// @Description Revokes the caller's refresh token.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// issueTokens creates an access token and a fresh refresh token, storing
// only the refresh token's hash.
func (h *authHandler) issueTokens(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiresAt); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:                 accessToken,
		ExpiresAt:             expiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
		User:                  dto.ToUserResponse(user),
	}, nil
}
