package models

import "time"

// Cupping is a single-user tasting record
type Cupping struct {
	CuppingID     string            `json:"cupping_id"`
	UserID        string            `json:"user_id"`
	CoffeeName    string            `json:"coffee_name"`
	Origin        string            `json:"origin"`
	Roaster       string            `json:"roaster"`
	ProcessMethod string            `json:"process_method"`
	BrewMethod    string            `json:"brew_method"`
	OverallScore  float64           `json:"overall_score"`
	Evaluation    EvaluationPayload `json:"evaluation,omitempty"`
	FlavorNotes   string            `json:"flavor_notes"`
	Notes         string            `json:"notes"`
	IsPublic      bool              `json:"is_public"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CuppingStats summarizes a user's cupping history
type CuppingStats struct {
	TotalCuppings   int     `json:"total_cuppings"`
	AverageScore    float64 `json:"average_score"`
	FavoriteOrigin  string  `json:"favorite_origin"`
	FavoriteRoaster string  `json:"favorite_roaster"`
}

// CuppingSearch holds optional filters for cupping searches
type CuppingSearch struct {
	UserID     string
	CoffeeName string
	Origin     string
	Roaster    string
	Limit      int
}
