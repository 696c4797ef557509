package repository

import (
	"fmt"

	"github.com/rabermudezg13/coffee-cupping-app/internal/database"
	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification stores a new notification
func (r *NotificationRepository) CreateNotification(n *models.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, invitation_id, recipient_user_id, recipient_username, recipient_email, inviter_name, coffee_name, session_type, message, is_read, created_at, type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		n.NotificationID,
		n.InvitationID,
		n.RecipientUserID,
		n.RecipientUsername,
		n.RecipientEmail,
		n.InviterName,
		n.CoffeeName,
		n.SessionType,
		n.Message,
		n.IsRead,
		n.CreatedAt,
		n.Type,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetNotificationsForUser retrieves a user's notifications, newest first
func (r *NotificationRepository) GetNotificationsForUser(userID string) ([]models.Notification, error) {
	query := `
		SELECT notification_id, invitation_id, recipient_user_id, recipient_username, recipient_email, inviter_name, coffee_name, session_type, message, is_read, created_at, type
		FROM notifications
		WHERE recipient_user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.NotificationID,
			&n.InvitationID,
			&n.RecipientUserID,
			&n.RecipientUsername,
			&n.RecipientEmail,
			&n.InviterName,
			&n.CoffeeName,
			&n.SessionType,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt,
			&n.Type,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkNotificationRead marks a notification as read, scoped to its
// recipient so users cannot touch each other's notifications
func (r *NotificationRepository) MarkNotificationRead(notificationID, userID string) (bool, error) {
	query := "UPDATE notifications SET is_read = ? WHERE notification_id = ? AND recipient_user_id = ?"
	result, err := r.db.Exec(query, true, notificationID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// CountUnread returns the number of unread notifications for a user
func (r *NotificationRepository) CountUnread(userID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM notifications WHERE recipient_user_id = ? AND is_read = ?"
	if err := r.db.QueryRow(query, userID, false).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
