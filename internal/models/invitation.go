package models

import "time"

// Invitation response values
const (
	ResponseAccept  = "accept"
	ResponseDecline = "decline"
)

// InviteeUser identifies an invited participant, resolved from the user
// directory once at creation time
type InviteeUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// InvitationResponse records a single invitee's accept/decline
type InvitationResponse struct {
	Response    string    `json:"response"`
	UserName    string    `json:"userName"`
	RespondedAt time.Time `json:"respondedAt"`
}

// EvaluationPayload is a flat, schema-free cupping evaluation record.
// The aggregator only relies on the five numeric score keys; everything
// else rides along untouched.
type EvaluationPayload map[string]interface{}

// Number returns the numeric value for a key, if present and numeric.
// JSON decoding produces float64; integer literals from callers are
// accepted too.
func (e EvaluationPayload) Number(key string) (float64, bool) {
	v, ok := e[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ParticipantEvaluation is one participant's submitted evaluation
type ParticipantEvaluation struct {
	UserName    string            `json:"userName"`
	Evaluation  EvaluationPayload `json:"evaluation"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// Invitation is a collaborative cupping session invitation. Responses and
// participantEvaluations grow independently as invitees act; the document
// itself is never deleted, and expiry is a read-time filter only.
type Invitation struct {
	InvitationID           string                           `json:"invitationId"`
	InviterID              string                           `json:"inviterId"`
	InviterName            string                           `json:"inviterName"`
	InviteeUsers           []InviteeUser                    `json:"inviteeUsers"`
	SessionData            map[string]interface{}           `json:"sessionData"`
	Status                 string                           `json:"status"`
	CreatedAt              time.Time                        `json:"createdAt"`
	ExpiresAt              time.Time                        `json:"expiresAt"`
	Responses              map[string]InvitationResponse    `json:"responses"`
	ParticipantEvaluations map[string]ParticipantEvaluation `json:"participantEvaluations"`
}

// IsExpiredAt reports whether the invitation has expired relative to now.
// Expired invitations disappear from invitee inboxes but remain fully
// readable and writable by id.
func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// HasInvitee reports whether userID is among the resolved invitees
func (i *Invitation) HasInvitee(userID string) bool {
	for _, u := range i.InviteeUsers {
		if u.UserID == userID {
			return true
		}
	}
	return false
}

// CoffeeName returns the coffee name from the session metadata, with the
// original's fallback
func (i *Invitation) CoffeeName() string {
	if name, ok := i.SessionData["coffee_name"].(string); ok && name != "" {
		return name
	}
	return "Unknown Coffee"
}

// SessionType returns the session type from the session metadata
func (i *Invitation) SessionType() string {
	if t, ok := i.SessionData["session_type"].(string); ok && t != "" {
		return t
	}
	return "Quick Cupping"
}
