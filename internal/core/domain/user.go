package domain

import "time"

// UserRole defines what a user may do with its owner's data.
type UserRole string

const (
	RoleEditor UserRole = "EDITOR" // Owns and mutates its data
	RoleViewer UserRole = "VIEWER" // Reads its parent's data
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Email        string   `json:"email"`
	FullName     string   `json:"fullName"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	ParentID     *string  `json:"parentID,omitempty"` // Owner whose data a viewer reads
	AuditFields

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// OwnerID returns the owner whose data the user operates on.
func (u User) OwnerID() string {
	if u.Role == RoleViewer && u.ParentID != nil && *u.ParentID != "" {
		return *u.ParentID
	}
	return u.UserID
}

// ActorName is the label recorded in audit entries for this user.
func (u User) ActorName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.Email != "":
		return u.Email
	default:
		return "user"
	}
}
