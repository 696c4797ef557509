package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabermudezg13/coffee-cupping-app/internal/database"
	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

// InvitationRepository handles database operations for cupping invitations.
// An invitation is stored across four tables: the header row, invitees,
// per-user responses and per-user evaluations. Responses and evaluations
// are written with dialect upserts keyed on (invitation_id, user_id), so
// concurrent writers touching different users never conflict and a
// repeated write by the same user overwrites their own row only.
type InvitationRepository struct {
	db *database.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *database.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// CreateInvitation stores a new invitation and its invitee list
func (r *InvitationRepository) CreateInvitation(inv *models.Invitation) error {
	sessionData, err := json.Marshal(inv.SessionData)
	if err != nil {
		return fmt.Errorf("failed to encode session data: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invitations (invitation_id, inviter_id, inviter_name, session_data, status, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		inv.InvitationID,
		inv.InviterID,
		inv.InviterName,
		string(sessionData),
		inv.Status,
		inv.CreatedAt,
		inv.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	inviteeQuery := `
		INSERT INTO invitation_invitees (invitation_id, user_id, username, email)
		VALUES (?, ?, ?, ?)
	`
	for _, invitee := range inv.InviteeUsers {
		if _, err := tx.Exec(inviteeQuery, inv.InvitationID, invitee.UserID, invitee.Username, invitee.Email); err != nil {
			return fmt.Errorf("failed to add invitee: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invitation: %w", err)
	}
	return nil
}

// GetInvitation retrieves a full invitation by ID, or nil when not found
func (r *InvitationRepository) GetInvitation(invitationID string) (*models.Invitation, error) {
	query := `
		SELECT invitation_id, inviter_id, inviter_name, session_data, status, created_at, expires_at
		FROM invitations
		WHERE invitation_id = ?
	`
	inv, err := r.scanInvitation(r.db.QueryRow(query, invitationID))
	if err != nil || inv == nil {
		return inv, err
	}
	if err := r.loadInvitationDetails(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvitationsForInvitee retrieves non-expired invitations addressed to
// a user, newest first. Expired invitations are filtered here at read
// time; they are never deleted.
func (r *InvitationRepository) GetInvitationsForInvitee(userID string, now time.Time) ([]*models.Invitation, error) {
	query := `
		SELECT i.invitation_id, i.inviter_id, i.inviter_name, i.session_data, i.status, i.created_at, i.expires_at
		FROM invitations i
		JOIN invitation_invitees ii ON ii.invitation_id = i.invitation_id
		WHERE ii.user_id = ? AND i.expires_at > ?
		ORDER BY i.created_at DESC
	`
	return r.queryInvitations(query, userID, now)
}

// GetInvitationsByInviter retrieves the invitations a user has sent,
// newest first, including expired ones
func (r *InvitationRepository) GetInvitationsByInviter(inviterID string) ([]*models.Invitation, error) {
	query := `
		SELECT invitation_id, inviter_id, inviter_name, session_data, status, created_at, expires_at
		FROM invitations
		WHERE inviter_id = ?
		ORDER BY created_at DESC
	`
	return r.queryInvitations(query, inviterID)
}

// UpsertResponse records or overwrites a user's accept/decline on an
// invitation. Last write wins for the same user.
func (r *InvitationRepository) UpsertResponse(invitationID, userID string, response models.InvitationResponse) error {
	query := r.db.Dialect.UpsertResponseQuery()
	_, err := r.db.Exec(query, invitationID, userID, response.Response, response.UserName, response.RespondedAt)
	if err != nil {
		return fmt.Errorf("failed to record response: %w", err)
	}
	return nil
}

// UpsertEvaluation records or overwrites a participant's evaluation
func (r *InvitationRepository) UpsertEvaluation(invitationID, userID string, eval models.ParticipantEvaluation) error {
	payload, err := json.Marshal(eval.Evaluation)
	if err != nil {
		return fmt.Errorf("failed to encode evaluation: %w", err)
	}

	query := r.db.Dialect.UpsertEvaluationQuery()
	_, err = r.db.Exec(query, invitationID, userID, eval.UserName, string(payload), eval.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to record evaluation: %w", err)
	}
	return nil
}

// InvitationExists reports whether an invitation header row exists
func (r *InvitationRepository) InvitationExists(invitationID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM invitations WHERE invitation_id = ?"
	if err := r.db.QueryRow(query, invitationID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check invitation: %w", err)
	}
	return count > 0, nil
}

func (r *InvitationRepository) scanInvitation(row *sql.Row) (*models.Invitation, error) {
	inv := &models.Invitation{}
	var sessionData string
	err := row.Scan(
		&inv.InvitationID,
		&inv.InviterID,
		&inv.InviterName,
		&sessionData,
		&inv.Status,
		&inv.CreatedAt,
		&inv.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if err := json.Unmarshal([]byte(sessionData), &inv.SessionData); err != nil {
		return nil, fmt.Errorf("failed to decode session data: %w", err)
	}
	return inv, nil
}

func (r *InvitationRepository) queryInvitations(query string, args ...interface{}) ([]*models.Invitation, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		inv := &models.Invitation{}
		var sessionData string
		if err := rows.Scan(
			&inv.InvitationID,
			&inv.InviterID,
			&inv.InviterName,
			&sessionData,
			&inv.Status,
			&inv.CreatedAt,
			&inv.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		if err := json.Unmarshal([]byte(sessionData), &inv.SessionData); err != nil {
			return nil, fmt.Errorf("failed to decode session data: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invitations: %w", err)
	}

	for _, inv := range invitations {
		if err := r.loadInvitationDetails(inv); err != nil {
			return nil, err
		}
	}
	return invitations, nil
}

// loadInvitationDetails fills in the invitee list and the response and
// evaluation maps for an invitation header
func (r *InvitationRepository) loadInvitationDetails(inv *models.Invitation) error {
	invitees, err := r.getInvitees(inv.InvitationID)
	if err != nil {
		return err
	}
	inv.InviteeUsers = invitees

	responses, err := r.getResponses(inv.InvitationID)
	if err != nil {
		return err
	}
	inv.Responses = responses

	evaluations, err := r.getEvaluations(inv.InvitationID)
	if err != nil {
		return err
	}
	inv.ParticipantEvaluations = evaluations

	return nil
}

func (r *InvitationRepository) getInvitees(invitationID string) ([]models.InviteeUser, error) {
	query := `
		SELECT user_id, username, email
		FROM invitation_invitees
		WHERE invitation_id = ?
	`
	rows, err := r.db.Query(query, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitees: %w", err)
	}
	defer rows.Close()

	invitees := []models.InviteeUser{}
	for rows.Next() {
		var invitee models.InviteeUser
		if err := rows.Scan(&invitee.UserID, &invitee.Username, &invitee.Email); err != nil {
			return nil, fmt.Errorf("failed to scan invitee: %w", err)
		}
		invitees = append(invitees, invitee)
	}
	return invitees, rows.Err()
}

func (r *InvitationRepository) getResponses(invitationID string) (map[string]models.InvitationResponse, error) {
	query := `
		SELECT user_id, response, user_name, responded_at
		FROM invitation_responses
		WHERE invitation_id = ?
	`
	rows, err := r.db.Query(query, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := map[string]models.InvitationResponse{}
	for rows.Next() {
		var userID string
		var response models.InvitationResponse
		if err := rows.Scan(&userID, &response.Response, &response.UserName, &response.RespondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses[userID] = response
	}
	return responses, rows.Err()
}

func (r *InvitationRepository) getEvaluations(invitationID string) (map[string]models.ParticipantEvaluation, error) {
	query := `
		SELECT user_id, user_name, evaluation, submitted_at
		FROM invitation_evaluations
		WHERE invitation_id = ?
	`
	rows, err := r.db.Query(query, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := map[string]models.ParticipantEvaluation{}
	for rows.Next() {
		var userID, payload string
		var eval models.ParticipantEvaluation
		if err := rows.Scan(&userID, &eval.UserName, &payload, &eval.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &eval.Evaluation); err != nil {
			return nil, fmt.Errorf("failed to decode evaluation: %w", err)
		}
		evaluations[userID] = eval
	}
	return evaluations, rows.Err()
}
