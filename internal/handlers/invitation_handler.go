package handlers

import (
	"net/http"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
	"github.com/rabermudezg13/coffee-cupping-app/internal/service"
)

// InvitationHandler handles collaborative cupping invitation requests
type InvitationHandler struct {
	invitationService *service.InvitationService
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Create handles POST /api/invitations
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		InviteeUsernames []string               `json:"inviteeUsernames"`
		SessionData      map[string]interface{} `json:"sessionData"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.InviteeUsernames) == 0 {
		respondError(w, http.StatusBadRequest, "inviteeUsernames is required")
		return
	}

	inv, err := h.invitationService.CreateInvitation(r.Context(), user, req.InviteeUsernames, req.SessionData)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, inv)
}

// Inbox handles GET /api/invitations
func (h *InvitationHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	invitations, err := h.invitationService.GetUserInvitations(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if invitations == nil {
		invitations = []*models.Invitation{}
	}
	respondJSON(w, http.StatusOK, invitations)
}

// Sent handles GET /api/invitations/sent
func (h *InvitationHandler) Sent(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	invitations, err := h.invitationService.GetSentInvitations(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if invitations == nil {
		invitations = []*models.Invitation{}
	}
	respondJSON(w, http.StatusOK, invitations)
}

// Get handles GET /api/invitations/{id}
func (h *InvitationHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invitationService.GetInvitation(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

// Respond handles POST /api/invitations/{id}/respond
func (h *InvitationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Response string `json:"response"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.invitationService.RespondToInvitation(r.PathValue("id"), user, req.Response); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "response recorded"})
}

// SubmitEvaluation handles POST /api/invitations/{id}/evaluations
func (h *InvitationHandler) SubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Evaluation models.EvaluationPayload `json:"evaluation"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.invitationService.SubmitEvaluation(r.PathValue("id"), user, req.Evaluation); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "evaluation recorded"})
}

// Results handles GET /api/invitations/{id}/results
func (h *InvitationHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.invitationService.SessionResults(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// Notifications handles GET /api/notifications
func (h *InvitationHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	notifications, err := h.invitationService.Notifications(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

// MarkNotificationRead handles POST /api/notifications/{id}/read
func (h *InvitationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.invitationService.MarkNotificationRead(r.PathValue("id"), user.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "marked read"})
}
