package models

import "time"

// User represents a row of the users table.
type User struct {
	UserID       string  `db:"user_id"`
	Email        string  `db:"email"`
	FullName     string  `db:"full_name"`
	PasswordHash string  `db:"password_hash"`
	Role         string  `db:"role"`
	ParentID     *string `db:"parent_id"` // Owner a viewer reads from
	AuditFields

	// Refresh Token Fields
	RefreshTokenHash       *string    `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
