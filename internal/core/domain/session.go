package domain

// Session is the request-scoped identity every service call operates under.
// It replaces any notion of a process-wide "current owner".
type Session struct {
	UserID  string   `json:"userID"`
	OwnerID string   `json:"ownerID"`
	Role    UserRole `json:"role"`
	Actor   string   `json:"actor"`
}

// NewSession builds the session for an authenticated user.
func NewSession(u User) Session {
	return Session{
		UserID:  u.UserID,
		OwnerID: u.OwnerID(),
		Role:    u.Role,
		Actor:   u.ActorName(),
	}
}

// CanWrite reports whether the session may mutate owner data.
func (s Session) CanWrite() bool {
	return s.Role == RoleEditor
}
