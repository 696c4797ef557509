package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
	"github.com/rabermudezg13/coffee-cupping-app/internal/repository"
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrShopNameMissing  = errors.New("shop name is required")
	ErrRatingOutOfRange = errors.New("ratings must be between 0 and 5")
)

// ShopReviewService handles coffee shop reviews
type ShopReviewService struct {
	shopRepo *repository.ShopReviewRepository
}

// NewShopReviewService creates a new shop review service
func NewShopReviewService(shopRepo *repository.ShopReviewRepository) *ShopReviewService {
	return &ShopReviewService{shopRepo: shopRepo}
}

func validateRatings(review *models.ShopReview) error {
	if review.CoffeeRating < 0 || review.CoffeeRating > 5 {
		return ErrRatingOutOfRange
	}
	if review.LatteArtRating < 0 || review.LatteArtRating > 5 {
		return ErrRatingOutOfRange
	}
	return nil
}

// CreateReview records a new shop review
func (s *ShopReviewService) CreateReview(user *models.User, review *models.ShopReview) (*models.ShopReview, error) {
	if strings.TrimSpace(review.ShopName) == "" {
		return nil, ErrShopNameMissing
	}
	if err := validateRatings(review); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review.ReviewID = uuid.New().String()
	review.ReviewedBy = user.UserID
	review.ReviewerName = user.DisplayName()
	review.CreatedAt = now
	review.UpdatedAt = now

	if err := s.shopRepo.CreateReview(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// GetReview returns one review by ID
func (s *ShopReviewService) GetReview(reviewID string) (*models.ShopReview, error) {
	review, err := s.shopRepo.GetReview(reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// GetUserReviews returns a user's reviews, newest first
func (s *ShopReviewService) GetUserReviews(userID string) ([]models.ShopReview, error) {
	reviews, err := s.shopRepo.GetReviewsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	return reviews, nil
}

// GetPublicReviews returns publicly shared reviews, newest first
func (s *ShopReviewService) GetPublicReviews(limit int) ([]models.ShopReview, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	reviews, err := s.shopRepo.GetPublicReviews(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get public reviews: %w", err)
	}
	return reviews, nil
}

// UpdateReview updates a review owned by the user
func (s *ShopReviewService) UpdateReview(user *models.User, review *models.ShopReview) error {
	if strings.TrimSpace(review.ShopName) == "" {
		return ErrShopNameMissing
	}
	if err := validateRatings(review); err != nil {
		return err
	}
	review.ReviewedBy = user.UserID
	review.UpdatedAt = time.Now().UTC()

	updated, err := s.shopRepo.UpdateReview(review)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if !updated {
		return ErrReviewNotFound
	}
	return nil
}

// DeleteReview removes a review owned by the user
func (s *ShopReviewService) DeleteReview(reviewID, userID string) error {
	deleted, err := s.shopRepo.DeleteReview(reviewID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if !deleted {
		return ErrReviewNotFound
	}
	return nil
}

// GetUserStats summarizes a user's review history
func (s *ShopReviewService) GetUserStats(userID string) (*models.ShopReviewStats, error) {
	reviews, err := s.shopRepo.GetReviewsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	stats := &models.ShopReviewStats{TotalReviews: len(reviews)}
	if len(reviews) == 0 {
		return stats, nil
	}

	var total float64
	preparations := map[string]int{}
	for _, review := range reviews {
		total += review.CoffeeRating
		if review.PreparationMethod != "" {
			preparations[review.PreparationMethod]++
		}
	}
	stats.AverageCoffeeRating = total / float64(len(reviews))
	stats.FavoritePreparation = mostCommon(preparations)
	return stats, nil
}

// GetShopStats summarizes all public reviews for one shop
func (s *ShopReviewService) GetShopStats(shopName string) (*models.ShopStats, error) {
	reviews, err := s.shopRepo.GetReviewsByShop(shopName)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	stats := &models.ShopStats{TotalReviews: len(reviews)}
	if len(reviews) == 0 {
		return stats, nil
	}

	var coffee, latte float64
	preparations := map[string]int{}
	for _, review := range reviews {
		coffee += review.CoffeeRating
		latte += review.LatteArtRating
		if review.PreparationMethod != "" {
			preparations[review.PreparationMethod]++
		}
	}
	stats.AverageCoffeeRating = coffee / float64(len(reviews))
	stats.AverageLatteArtRating = latte / float64(len(reviews))
	stats.MostCommonPreparation = mostCommon(preparations)
	return stats, nil
}
