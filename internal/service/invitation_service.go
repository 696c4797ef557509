package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

var (
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrNoInviteesResolved   = errors.New("no invitees could be resolved")
	ErrInvalidResponse      = errors.New("response must be accept or decline")
	ErrNotificationNotFound = errors.New("notification not found")
)

// InvitationExpiry is how long an invitation stays visible in invitee
// inboxes. Expiry never blocks responses or evaluations; the invitation
// just stops being listed.
const InvitationExpiry = 7 * 24 * time.Hour

// UserDirectory resolves invitee usernames to accounts
type UserDirectory interface {
	GetUserByUsername(username string) (*models.User, error)
}

// InvitationStore persists invitations and their per-user sub-records
type InvitationStore interface {
	CreateInvitation(inv *models.Invitation) error
	GetInvitation(invitationID string) (*models.Invitation, error)
	GetInvitationsForInvitee(userID string, now time.Time) ([]*models.Invitation, error)
	GetInvitationsByInviter(inviterID string) ([]*models.Invitation, error)
	UpsertResponse(invitationID, userID string, response models.InvitationResponse) error
	UpsertEvaluation(invitationID, userID string, eval models.ParticipantEvaluation) error
	InvitationExists(invitationID string) (bool, error)
}

// NotificationStore persists in-app notifications
type NotificationStore interface {
	CreateNotification(n *models.Notification) error
	GetNotificationsForUser(userID string) ([]models.Notification, error)
	MarkNotificationRead(notificationID, userID string) (bool, error)
}

// InvitationService implements collaborative cupping invitations
type InvitationService struct {
	directory     UserDirectory
	invitations   InvitationStore
	notifications NotificationStore
	email         *EmailService

	// injectable for tests
	now   func() time.Time
	newID func() string
}

// NewInvitationService creates a new invitation service. The email
// service may be nil when outbound email is not wanted.
func NewInvitationService(directory UserDirectory, invitations InvitationStore, notifications NotificationStore, email *EmailService) *InvitationService {
	return &InvitationService{
		directory:     directory,
		invitations:   invitations,
		notifications: notifications,
		email:         email,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         func() string { return uuid.New().String() },
	}
}

// CreateInvitation resolves invitee usernames, stores the invitation and
// fans out notifications. Usernames that do not resolve are skipped; if
// none resolve the invitation is not created.
func (s *InvitationService) CreateInvitation(ctx context.Context, inviter *models.User, inviteeUsernames []string, sessionData map[string]interface{}) (*models.Invitation, error) {
	var invitees []models.InviteeUser
	for _, username := range inviteeUsernames {
		user, err := s.directory.GetUserByUsername(username)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve invitee %s: %w", username, err)
		}
		if user == nil {
			log.Printf("Skipping unknown invitee: %s", username)
			continue
		}
		invitees = append(invitees, models.InviteeUser{
			UserID:   user.UserID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
	if len(invitees) == 0 {
		return nil, ErrNoInviteesResolved
	}

	if sessionData == nil {
		sessionData = map[string]interface{}{}
	}

	now := s.now()
	inv := &models.Invitation{
		InvitationID:           s.newID(),
		InviterID:              inviter.UserID,
		InviterName:            inviter.DisplayName(),
		InviteeUsers:           invitees,
		SessionData:            sessionData,
		Status:                 "pending",
		CreatedAt:              now,
		ExpiresAt:              now.Add(InvitationExpiry),
		Responses:              map[string]models.InvitationResponse{},
		ParticipantEvaluations: map[string]models.ParticipantEvaluation{},
	}

	if err := s.invitations.CreateInvitation(inv); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.notifyInvitees(ctx, inv)

	return inv, nil
}

// notifyInvitees fans out notifications and email best-effort. A failed
// notification never fails the invitation.
func (s *InvitationService) notifyInvitees(ctx context.Context, inv *models.Invitation) {
	coffeeName := inv.CoffeeName()
	sessionType := inv.SessionType()

	for _, invitee := range inv.InviteeUsers {
		n := &models.Notification{
			NotificationID:    s.newID(),
			InvitationID:      inv.InvitationID,
			RecipientUserID:   invitee.UserID,
			RecipientUsername: invitee.Username,
			RecipientEmail:    invitee.Email,
			InviterName:       inv.InviterName,
			CoffeeName:        coffeeName,
			SessionType:       sessionType,
			Message:           fmt.Sprintf("%s invited you to cup %s", inv.InviterName, coffeeName),
			IsRead:            false,
			CreatedAt:         s.now(),
			Type:              models.NotificationTypeCuppingInvitation,
		}
		if err := s.notifications.CreateNotification(n); err != nil {
			log.Printf("Warning: failed to notify %s about invitation %s: %v", invitee.Username, inv.InvitationID, err)
		}

		if s.email != nil {
			if err := s.email.SendCuppingInvitationEmail(ctx, invitee.Email, invitee.Username, inv.InviterName, coffeeName, sessionType); err != nil {
				log.Printf("Warning: failed to email %s about invitation %s: %v", invitee.Email, inv.InvitationID, err)
			}
		}
	}
}

// GetUserInvitations returns the non-expired invitations in a user's
// inbox, newest first
func (s *InvitationService) GetUserInvitations(userID string) ([]*models.Invitation, error) {
	invitations, err := s.invitations.GetInvitationsForInvitee(userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get invitations: %w", err)
	}
	return invitations, nil
}

// GetSentInvitations returns the invitations a user has sent, including
// expired ones
func (s *InvitationService) GetSentInvitations(userID string) ([]*models.Invitation, error) {
	invitations, err := s.invitations.GetInvitationsByInviter(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sent invitations: %w", err)
	}
	return invitations, nil
}

// GetInvitation returns one invitation by ID
func (s *InvitationService) GetInvitation(invitationID string) (*models.Invitation, error) {
	inv, err := s.invitations.GetInvitation(invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}
	return inv, nil
}

// RespondToInvitation records a user's accept or decline. Responding
// again overwrites the previous response. Expired invitations still
// accept responses.
func (s *InvitationService) RespondToInvitation(invitationID string, user *models.User, response string) error {
	if response != models.ResponseAccept && response != models.ResponseDecline {
		return ErrInvalidResponse
	}

	exists, err := s.invitations.InvitationExists(invitationID)
	if err != nil {
		return fmt.Errorf("failed to check invitation: %w", err)
	}
	if !exists {
		return ErrInvitationNotFound
	}

	record := models.InvitationResponse{
		Response:    response,
		UserName:    user.DisplayName(),
		RespondedAt: s.now(),
	}
	if err := s.invitations.UpsertResponse(invitationID, user.UserID, record); err != nil {
		return fmt.Errorf("failed to record response: %w", err)
	}
	return nil
}

// SubmitEvaluation records a participant's evaluation. Submitting again
// overwrites the participant's previous evaluation.
func (s *InvitationService) SubmitEvaluation(invitationID string, user *models.User, evaluation models.EvaluationPayload) error {
	exists, err := s.invitations.InvitationExists(invitationID)
	if err != nil {
		return fmt.Errorf("failed to check invitation: %w", err)
	}
	if !exists {
		return ErrInvitationNotFound
	}

	if evaluation == nil {
		evaluation = models.EvaluationPayload{}
	}

	record := models.ParticipantEvaluation{
		UserName:    user.DisplayName(),
		Evaluation:  evaluation,
		SubmittedAt: s.now(),
	}
	if err := s.invitations.UpsertEvaluation(invitationID, user.UserID, record); err != nil {
		return fmt.Errorf("failed to record evaluation: %w", err)
	}
	return nil
}

// SessionResults aggregates the evaluations submitted for an invitation
func (s *InvitationService) SessionResults(invitationID string) (*SessionResults, error) {
	inv, err := s.GetInvitation(invitationID)
	if err != nil {
		return nil, err
	}
	return AggregateResults(inv), nil
}

// Notifications returns a user's notifications, newest first
func (s *InvitationService) Notifications(userID string) ([]models.Notification, error) {
	notifications, err := s.notifications.GetNotificationsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead marks one of the user's notifications as read
func (s *InvitationService) MarkNotificationRead(notificationID, userID string) error {
	updated, err := s.notifications.MarkNotificationRead(notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !updated {
		return ErrNotificationNotFound
	}
	return nil
}
