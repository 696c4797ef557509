package models

import "time"

// ShopReview is a coffee shop review record
type ShopReview struct {
	ReviewID          string    `json:"reviewId"`
	ReviewedBy        string    `json:"reviewedBy"`
	ReviewerName      string    `json:"reviewerName"`
	ShopName          string    `json:"shopName"`
	City              string    `json:"city"`
	CoffeeRating      float64   `json:"coffeeRating"`
	LatteArtRating    float64   `json:"latteArtRating"`
	PreparationMethod string    `json:"preparationMethod"`
	Notes             string    `json:"notes"`
	IsPublic          bool      `json:"isPublic"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ShopReviewStats summarizes a user's review history
type ShopReviewStats struct {
	TotalReviews        int     `json:"total_reviews"`
	AverageCoffeeRating float64 `json:"average_coffee_rating"`
	FavoritePreparation string  `json:"favorite_preparation"`
}

// ShopStats summarizes all reviews for one shop
type ShopStats struct {
	TotalReviews          int     `json:"total_reviews"`
	AverageCoffeeRating   float64 `json:"average_coffee_rating"`
	AverageLatteArtRating float64 `json:"average_latte_art_rating"`
	MostCommonPreparation string  `json:"most_common_preparation"`
}
