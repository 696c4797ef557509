package models

import "time"

// CoffeeBag is a purchased coffee bag record
type CoffeeBag struct {
	BagID         string    `json:"bagId"`
	TrackedBy     string    `json:"trackedBy"`
	TrackerName   string    `json:"trackerName"`
	CoffeeName    string    `json:"coffeeName"`
	Roaster       string    `json:"roaster"`
	Origin        string    `json:"origin"`
	ProcessMethod string    `json:"processMethod"`
	RoastDate     *time.Time `json:"roastDate,omitempty"`
	Cost          float64   `json:"cost"`
	WeightGrams   float64   `json:"weightGrams"`
	Rating        float64   `json:"rating"`
	WouldBuyAgain bool      `json:"wouldBuyAgain"`
	Notes         string    `json:"notes"`
	IsPublic      bool      `json:"isPublic"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BagStats summarizes a user's coffee bag history
type BagStats struct {
	TotalBags      int     `json:"total_bags"`
	AverageRating  float64 `json:"average_rating"`
	TotalSpent     float64 `json:"total_spent"`
	FavoriteOrigin string  `json:"favorite_origin"`
	RepurchaseRate float64 `json:"repurchase_rate"`
}
