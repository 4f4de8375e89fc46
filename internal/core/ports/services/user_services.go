package services

import (
	"context"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListViewers retrieves the viewers bound to the session owner.
	ListViewers(ctx context.Context, session domain.Session) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register creates an editor and seeds its default categories.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateViewer creates a read-only user bound to the session owner.
	CreateViewer(ctx context.Context, session domain.Session, req dto.CreateViewerRequest) (*domain.User, error)

	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// ResolveSession builds the request session for an authenticated user.
	ResolveSession(ctx context.Context, userID string) (domain.Session, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
