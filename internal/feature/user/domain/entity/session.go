package entity

import "time"

// Session is the server-side record of a logged-in user.
// It keeps a copy of the identity fields shown on every page so a request does not
// need to load the user row.
type Session struct {
	ID        string    // Random session identifier carried by the session cookie
	UserID    uint      // Owner of the session
	Username  string    // Snapshot of User.Username
	Email     string    // Snapshot of User.Email
	CreatedAt time.Time // Login time
	ExpiresAt time.Time // Absolute expiry
}

// IsExpired reports whether the session has passed its expiration time.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Apply copies the identity fields of u into the session.
func (s *Session) Apply(u *User) {
	s.UserID = u.ID
	s.Username = u.Username
	s.Email = u.Email
}
