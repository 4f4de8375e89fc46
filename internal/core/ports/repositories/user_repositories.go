package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by login email (case-insensitive).
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListViewers retrieves the viewers bound to an owner.
	ListViewers(ctx context.Context, ownerID string) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUserInTx persists a new user inside tx.
	SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error

	// ClearRefreshToken removes a user's refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// UserRepositoryWithTx extends UserRepositoryFacade with transaction capabilities
type UserRepositoryWithTx interface {
	UserRepositoryFacade
	TransactionManager
}
