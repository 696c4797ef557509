package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
	"github.com/rabermudezg13/coffee-cupping-app/internal/service"
)

// CoffeeBagHandler handles coffee bag tracking requests
type CoffeeBagHandler struct {
	bagService *service.CoffeeBagService
}

// NewCoffeeBagHandler creates a new coffee bag handler
func NewCoffeeBagHandler(bagService *service.CoffeeBagService) *CoffeeBagHandler {
	return &CoffeeBagHandler{bagService: bagService}
}

type coffeeBagRequest struct {
	CoffeeName    string     `json:"coffeeName"`
	Roaster       string     `json:"roaster"`
	Origin        string     `json:"origin"`
	ProcessMethod string     `json:"processMethod"`
	RoastDate     *time.Time `json:"roastDate"`
	Cost          float64    `json:"cost"`
	WeightGrams   float64    `json:"weightGrams"`
	Rating        float64    `json:"rating"`
	WouldBuyAgain bool       `json:"wouldBuyAgain"`
	Notes         string     `json:"notes"`
	IsPublic      bool       `json:"isPublic"`
}

func (req *coffeeBagRequest) toModel() *models.CoffeeBag {
	return &models.CoffeeBag{
		CoffeeName:    req.CoffeeName,
		Roaster:       req.Roaster,
		Origin:        req.Origin,
		ProcessMethod: req.ProcessMethod,
		RoastDate:     req.RoastDate,
		Cost:          req.Cost,
		WeightGrams:   req.WeightGrams,
		Rating:        req.Rating,
		WouldBuyAgain: req.WouldBuyAgain,
		Notes:         req.Notes,
		IsPublic:      req.IsPublic,
	}
}

// Create handles POST /api/coffee-bags
func (h *CoffeeBagHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req coffeeBagRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bag, err := h.bagService.CreateBag(user, req.toModel())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bag)
}

// List handles GET /api/coffee-bags
func (h *CoffeeBagHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bags, err := h.bagService.GetUserBags(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if bags == nil {
		bags = []models.CoffeeBag{}
	}
	respondJSON(w, http.StatusOK, bags)
}

// ListPublic handles GET /api/coffee-bags/public
func (h *CoffeeBagHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	bags, err := h.bagService.GetPublicBags(limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if bags == nil {
		bags = []models.CoffeeBag{}
	}
	respondJSON(w, http.StatusOK, bags)
}

// Update handles PUT /api/coffee-bags/{id}
func (h *CoffeeBagHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req coffeeBagRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bag := req.toModel()
	bag.BagID = r.PathValue("id")
	if err := h.bagService.UpdateBag(user, bag); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bag)
}

// Delete handles DELETE /api/coffee-bags/{id}
func (h *CoffeeBagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.bagService.DeleteBag(r.PathValue("id"), user.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Stats handles GET /api/coffee-bags/stats
func (h *CoffeeBagHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.bagService.GetUserStats(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
