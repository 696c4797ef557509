package models

import "time"

// User represents a registered account
type User struct {
	UserID        string
	Email         string
	Username      string
	PasswordHash  string
	OAuthProvider string
	OAuthSubject  string
	ShowName      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLoginAt   *time.Time
}

// DisplayName returns the name shown on public records, honoring the
// user's show_name preference
func (u *User) DisplayName() string {
	if u.ShowName {
		return u.Username
	}
	return "Anonymous"
}

// Session represents a server-side login session
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PasswordResetToken represents a one-time password reset token
type PasswordResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
