package handlers

import (
	"net/http"
	"strconv"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
	"github.com/rabermudezg13/coffee-cupping-app/internal/service"
)

// ShopReviewHandler handles coffee shop review requests
type ShopReviewHandler struct {
	shopService *service.ShopReviewService
}

// NewShopReviewHandler creates a new shop review handler
func NewShopReviewHandler(shopService *service.ShopReviewService) *ShopReviewHandler {
	return &ShopReviewHandler{shopService: shopService}
}

type shopReviewRequest struct {
	ShopName          string  `json:"shopName"`
	City              string  `json:"city"`
	CoffeeRating      float64 `json:"coffeeRating"`
	LatteArtRating    float64 `json:"latteArtRating"`
	PreparationMethod string  `json:"preparationMethod"`
	Notes             string  `json:"notes"`
	IsPublic          bool    `json:"isPublic"`
}

func (req *shopReviewRequest) toModel() *models.ShopReview {
	return &models.ShopReview{
		ShopName:          req.ShopName,
		City:              req.City,
		CoffeeRating:      req.CoffeeRating,
		LatteArtRating:    req.LatteArtRating,
		PreparationMethod: req.PreparationMethod,
		Notes:             req.Notes,
		IsPublic:          req.IsPublic,
	}
}

// Create handles POST /api/shop-reviews
func (h *ShopReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req shopReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.shopService.CreateReview(user, req.toModel())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

// List handles GET /api/shop-reviews
func (h *ShopReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	reviews, err := h.shopService.GetUserReviews(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if reviews == nil {
		reviews = []models.ShopReview{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

// ListPublic handles GET /api/shop-reviews/public
func (h *ShopReviewHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	reviews, err := h.shopService.GetPublicReviews(limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if reviews == nil {
		reviews = []models.ShopReview{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

// Update handles PUT /api/shop-reviews/{id}
func (h *ShopReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req shopReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review := req.toModel()
	review.ReviewID = r.PathValue("id")
	if err := h.shopService.UpdateReview(user, review); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// Delete handles DELETE /api/shop-reviews/{id}
func (h *ShopReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.shopService.DeleteReview(r.PathValue("id"), user.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Stats handles GET /api/shop-reviews/stats
func (h *ShopReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.shopService.GetUserStats(user.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// ShopStats handles GET /api/shops/{name}/stats
func (h *ShopReviewHandler) ShopStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.shopService.GetShopStats(r.PathValue("name"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
