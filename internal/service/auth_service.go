package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
	"github.com/rabermudezg13/coffee-cupping-app/internal/repository"
	"github.com/rabermudezg13/coffee-cupping-app/internal/security"
	"github.com/rabermudezg13/coffee-cupping-app/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new user account
func (s *AuthService) Register(email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		ShowName:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user by email or username and creates a session
func (s *AuthService) Login(identifier, password string) (*models.Session, *models.User, error) {
	user, err := s.lookupByIdentifier(identifier)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	return s.startSession(user)
}

func (s *AuthService) lookupByIdentifier(identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		user, err := s.userRepo.GetUserByEmail(strings.ToLower(identifier))
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		return user, nil
	}
	user, err := s.userRepo.GetUserByUsername(identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) startSession(user *models.User) (*models.Session, *models.User, error) {
	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(user.UserID, now); err != nil {
		log.Printf("Warning: failed to update last login for %s: %v", user.Username, err)
	}

	sessionID := security.GenerateSessionID()
	session, err := s.userRepo.CreateSession(sessionID, user.UserID, now.Add(s.sessionDuration))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, user, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		// Clean up expired session
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// UpdateShowName updates the user's display name privacy setting
func (s *AuthService) UpdateShowName(userID string, showName bool) error {
	if err := s.userRepo.UpdateShowName(userID, showName); err != nil {
		return fmt.Errorf("failed to update display setting: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates a user using an OAuth provider
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.Session, *models.User, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existing, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			if existing.OAuthProvider != "" && existing.OAuthProvider != provider {
				return nil, nil, ErrEmailTaken
			}
			if err := s.userRepo.LinkOAuthProvider(existing.UserID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			user = existing
		} else {
			username, err := s.uniqueUsername(name, email)
			if err != nil {
				return nil, nil, err
			}
			randomPasswordHash, err := security.HashPassword(security.GenerateSessionID())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate oauth password hash: %w", err)
			}

			now := time.Now().UTC()
			user = &models.User{
				UserID:        uuid.New().String(),
				Email:         email,
				Username:      username,
				PasswordHash:  randomPasswordHash,
				OAuthProvider: provider,
				OAuthSubject:  subject,
				ShowName:      true,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := s.userRepo.CreateUser(user); err != nil {
				return nil, nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
		}
	}

	return s.startSession(user)
}

// uniqueUsername derives a valid, unused username from an OAuth display
// name or email local part
func (s *AuthService) uniqueUsername(name, email string) (string, error) {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return -1
	}, name)
	if base == "" {
		base = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
				return r
			}
			return -1
		}, strings.Split(email, "@")[0])
	}
	if len(base) < 3 {
		base = "cupper"
	}
	if len(base) > 14 {
		base = base[:14]
	}

	candidate := base
	for i := 0; i < 20; i++ {
		existing, err := s.userRepo.GetUserByUsername(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%s", base, uuid.New().String()[:6])
	}
	return "", errors.New("could not derive a unique username")
}

// RequestPasswordReset creates a password reset token and sends an email.
// When the email is unknown nothing happens, so the endpoint does not
// reveal which addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailService *EmailService, email string) error {
	user, err := s.userRepo.GetUserByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil
	}

	token := &models.PasswordResetToken{
		Token:     uuid.New().String(),
		UserID:    user.UserID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.CreatePasswordResetToken(token); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := emailService.SendPasswordResetEmail(ctx, user.Email, user.Username, token.Token); err != nil {
		log.Printf("Warning: failed to send password reset email to %s: %v", user.Email, err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	t, err := s.userRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if t == nil || t.Used || t.IsExpired() {
		return ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(t.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.userRepo.MarkPasswordResetTokenUsed(token); err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	return nil
}
