package repository

import (
	"database/sql"
	"fmt"

	"github.com/rabermudezg13/coffee-cupping-app/internal/database"
	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

const shopReviewColumns = "review_id, reviewed_by, reviewer_name, shop_name, city, coffee_rating, latte_art_rating, preparation_method, notes, is_public, created_at, updated_at"

// ShopReviewRepository handles database operations for coffee shop reviews
type ShopReviewRepository struct {
	db *database.DB
}

// NewShopReviewRepository creates a new shop review repository
func NewShopReviewRepository(db *database.DB) *ShopReviewRepository {
	return &ShopReviewRepository{db: db}
}

// CreateReview inserts a new shop review
func (r *ShopReviewRepository) CreateReview(review *models.ShopReview) error {
	query := `
		INSERT INTO shop_reviews (` + shopReviewColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		review.ReviewID, review.ReviewedBy, review.ReviewerName, review.ShopName,
		review.City, review.CoffeeRating, review.LatteArtRating, review.PreparationMethod,
		review.Notes, review.IsPublic, review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetReview retrieves a review by ID, or nil when not found
func (r *ShopReviewRepository) GetReview(reviewID string) (*models.ShopReview, error) {
	query := "SELECT " + shopReviewColumns + " FROM shop_reviews WHERE review_id = ?"
	review := &models.ShopReview{}
	err := r.db.QueryRow(query, reviewID).Scan(
		&review.ReviewID, &review.ReviewedBy, &review.ReviewerName, &review.ShopName,
		&review.City, &review.CoffeeRating, &review.LatteArtRating, &review.PreparationMethod,
		&review.Notes, &review.IsPublic, &review.CreatedAt, &review.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// GetReviewsByUser retrieves a user's reviews, newest first
func (r *ShopReviewRepository) GetReviewsByUser(userID string) ([]models.ShopReview, error) {
	query := "SELECT " + shopReviewColumns + " FROM shop_reviews WHERE reviewed_by = ? ORDER BY created_at DESC"
	return r.queryReviews(query, userID)
}

// GetPublicReviews retrieves publicly shared reviews, newest first
func (r *ShopReviewRepository) GetPublicReviews(limit int) ([]models.ShopReview, error) {
	query := "SELECT " + shopReviewColumns + " FROM shop_reviews WHERE is_public = ? ORDER BY created_at DESC LIMIT ?"
	return r.queryReviews(query, true, limit)
}

// GetReviewsByShop retrieves all public reviews for one shop name
func (r *ShopReviewRepository) GetReviewsByShop(shopName string) ([]models.ShopReview, error) {
	query := "SELECT " + shopReviewColumns + " FROM shop_reviews WHERE shop_name = ? AND is_public = ? ORDER BY created_at DESC"
	return r.queryReviews(query, shopName, true)
}

// UpdateReview updates an existing review, scoped to its author
func (r *ShopReviewRepository) UpdateReview(review *models.ShopReview) (bool, error) {
	query := `
		UPDATE shop_reviews
		SET shop_name = ?, city = ?, coffee_rating = ?, latte_art_rating = ?,
			preparation_method = ?, notes = ?, is_public = ?, updated_at = ?
		WHERE review_id = ? AND reviewed_by = ?
	`
	result, err := r.db.Exec(query,
		review.ShopName, review.City, review.CoffeeRating, review.LatteArtRating,
		review.PreparationMethod, review.Notes, review.IsPublic, review.UpdatedAt,
		review.ReviewID, review.ReviewedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update review: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// DeleteReview removes a review, scoped to its author
func (r *ShopReviewRepository) DeleteReview(reviewID, userID string) (bool, error) {
	query := "DELETE FROM shop_reviews WHERE review_id = ? AND reviewed_by = ?"
	result, err := r.db.Exec(query, reviewID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return rows > 0, nil
}

func (r *ShopReviewRepository) queryReviews(query string, args ...interface{}) ([]models.ShopReview, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.ShopReview
	for rows.Next() {
		var review models.ShopReview
		if err := rows.Scan(
			&review.ReviewID, &review.ReviewedBy, &review.ReviewerName, &review.ShopName,
			&review.City, &review.CoffeeRating, &review.LatteArtRating, &review.PreparationMethod,
			&review.Notes, &review.IsPublic, &review.CreatedAt, &review.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
