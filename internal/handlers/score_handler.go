package handlers

import (
	"net/http"

	"github.com/rabermudezg13/coffee-cupping-app/internal/scoring"
)

// ScoreHandler computes SCA cupping scores without storing anything
type ScoreHandler struct{}

// NewScoreHandler creates a new score handler
func NewScoreHandler() *ScoreHandler {
	return &ScoreHandler{}
}

// Calculate handles POST /api/score
func (h *ScoreHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Attributes map[string]float64 `json:"attributes"`
		Defects    map[string]int     `json:"defects"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := scoring.Score(req.Attributes, req.Defects)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
