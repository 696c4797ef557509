package models

import "time"

// NotificationTypeCuppingInvitation is the only notification type the app
// currently produces
const NotificationTypeCuppingInvitation = "cupping_invitation"

// Notification is an in-app notification, one per invitee per invitation.
// isRead is the only mutable field.
type Notification struct {
	NotificationID    string    `json:"notificationId"`
	InvitationID      string    `json:"invitationId"`
	RecipientUserID   string    `json:"recipientUserId"`
	RecipientUsername string    `json:"recipientUsername"`
	RecipientEmail    string    `json:"recipientEmail"`
	InviterName       string    `json:"inviterName"`
	CoffeeName        string    `json:"coffeeName"`
	SessionType       string    `json:"sessionType"`
	Message           string    `json:"message"`
	IsRead            bool      `json:"isRead"`
	CreatedAt         time.Time `json:"createdAt"`
	Type              string    `json:"type"`
}
