package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger_app/internal/models"
	"github.com/SscSPs/farm_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryWithTx {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryWithTx
var _ portsrepo.UserRepositoryWithTx = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, full_name, password_hash, role, parent_id,
	created_at, created_by, last_updated_at, last_updated_by, version,
	refresh_token_hash, refresh_token_expiry_time`

func scanUser(row rowScanner) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.FullName,
		&m.PasswordHash,
		&m.Role,
		&m.ParentID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	return m, err
}

func (r *PgxUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, email, full_name, password_hash, role, parent_id,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.FullName,
		m.PasswordHash,
		m.Role,
		m.ParentID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find user by ID "+userID)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1);`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, notFoundOr(err, "failed to find user by email")
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) ListViewers(ctx context.Context, ownerID string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE parent_id = $1 AND role = 'VIEWER' ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query viewers: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(users), nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, refreshTokenHash, expiry)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	return expectOne(tag)
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	return expectOne(tag)
}
