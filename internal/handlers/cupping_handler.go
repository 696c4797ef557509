package handlers

import (
	"net/http"
	"strconv"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
	"github.com/rabermudezg13/coffee-cupping-app/internal/service"
)

// CuppingHandler handles single-user cupping record requests
type CuppingHandler struct {
	cuppingService *service.CuppingService
}

// NewCuppingHandler creates a new cupping handler
func NewCuppingHandler(cuppingService *service.CuppingService) *CuppingHandler {
	return &CuppingHandler{cuppingService: cuppingService}
}

type cuppingRequest struct {
	CoffeeName    string                   `json:"coffee_name"`
	Origin        string                   `json:"origin"`
	Roaster       string                   `json:"roaster"`
	ProcessMethod string                   `json:"process_method"`
	BrewMethod    string                   `json:"brew_method"`
	OverallScore  float64                  `json:"overall_score"`
	Attributes    map[string]float64       `json:"attributes"`
	Defects       map[string]int           `json:"defects"`
	Evaluation    models.EvaluationPayload `json:"evaluation"`
	FlavorNotes   string                   `json:"flavor_notes"`
	Notes         string                   `json:"notes"`
	IsPublic      bool                     `json:"is_public"`
}

func (req *cuppingRequest) toModel() *models.Cupping {
	return &models.Cupping{
		CoffeeName:    req.CoffeeName,
		Origin:        req.Origin,
		Roaster:       req.Roaster,
		ProcessMethod: req.ProcessMethod,
		BrewMethod:    req.BrewMethod,
		OverallScore:  req.OverallScore,
		Evaluation:    req.Evaluation,
		FlavorNotes:   req.FlavorNotes,
		Notes:         req.Notes,
		IsPublic:      req.IsPublic,
	}
}

// Create handles POST /api/cuppings
func (h *CuppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req cuppingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cupping, err := h.cuppingService.CreateCupping(user, req.toModel(), req.Attributes, req.Defects)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cupping)
}

// List handles GET /api/cuppings
func (h *CuppingHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	cuppings, err := h.cuppingService.GetUserCuppings(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if cuppings == nil {
		cuppings = []models.Cupping{}
	}
	respondJSON(w, http.StatusOK, cuppings)
}

// ListPublic handles GET /api/cuppings/public
func (h *CuppingHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	cuppings, err := h.cuppingService.GetPublicCuppings(limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if cuppings == nil {
		cuppings = []models.Cupping{}
	}
	respondJSON(w, http.StatusOK, cuppings)
}

// Search handles GET /api/cuppings/search
func (h *CuppingHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := models.CuppingSearch{
		UserID:     user.UserID,
		CoffeeName: r.URL.Query().Get("coffee_name"),
		Origin:     r.URL.Query().Get("origin"),
		Roaster:    r.URL.Query().Get("roaster"),
		Limit:      limit,
	}

	cuppings, err := h.cuppingService.SearchCuppings(search)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if cuppings == nil {
		cuppings = []models.Cupping{}
	}
	respondJSON(w, http.StatusOK, cuppings)
}

// Get handles GET /api/cuppings/{id}
func (h *CuppingHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	cupping, err := h.cuppingService.GetCupping(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	// Private cuppings are only visible to their owner
	if !cupping.IsPublic && cupping.UserID != user.UserID {
		respondError(w, http.StatusNotFound, service.ErrCuppingNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, cupping)
}

// Update handles PUT /api/cuppings/{id}
func (h *CuppingHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req cuppingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cupping := req.toModel()
	cupping.CuppingID = r.PathValue("id")
	if err := h.cuppingService.UpdateCupping(user, cupping); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cupping)
}

// Delete handles DELETE /api/cuppings/{id}
func (h *CuppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.cuppingService.DeleteCupping(r.PathValue("id"), user.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Stats handles GET /api/cuppings/stats
func (h *CuppingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.cuppingService.GetUserStats(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
