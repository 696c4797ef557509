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

var ErrBagNotFound = errors.New("coffee bag not found")

// CoffeeBagService handles coffee bag tracking
type CoffeeBagService struct {
	bagRepo *repository.CoffeeBagRepository
}

// NewCoffeeBagService creates a new coffee bag service
func NewCoffeeBagService(bagRepo *repository.CoffeeBagRepository) *CoffeeBagService {
	return &CoffeeBagService{bagRepo: bagRepo}
}

// CreateBag records a new coffee bag
func (s *CoffeeBagService) CreateBag(user *models.User, bag *models.CoffeeBag) (*models.CoffeeBag, error) {
	if strings.TrimSpace(bag.CoffeeName) == "" {
		return nil, ErrCoffeeNameMissing
	}

	now := time.Now().UTC()
	bag.BagID = uuid.New().String()
	bag.TrackedBy = user.UserID
	bag.TrackerName = user.DisplayName()
	bag.CreatedAt = now
	bag.UpdatedAt = now

	if err := s.bagRepo.CreateBag(bag); err != nil {
		return nil, fmt.Errorf("failed to create coffee bag: %w", err)
	}
	return bag, nil
}

// GetBag returns one coffee bag by ID
func (s *CoffeeBagService) GetBag(bagID string) (*models.CoffeeBag, error) {
	bag, err := s.bagRepo.GetBag(bagID)
	if err != nil {
		return nil, fmt.Errorf("failed to get coffee bag: %w", err)
	}
	if bag == nil {
		return nil, ErrBagNotFound
	}
	return bag, nil
}

// GetUserBags returns a user's coffee bags, newest first
func (s *CoffeeBagService) GetUserBags(userID string) ([]models.CoffeeBag, error) {
	bags, err := s.bagRepo.GetBagsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get coffee bags: %w", err)
	}
	return bags, nil
}

// GetPublicBags returns publicly shared coffee bags, newest first
func (s *CoffeeBagService) GetPublicBags(limit int) ([]models.CoffeeBag, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	bags, err := s.bagRepo.GetPublicBags(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get public coffee bags: %w", err)
	}
	return bags, nil
}

// UpdateBag updates a coffee bag owned by the user
func (s *CoffeeBagService) UpdateBag(user *models.User, bag *models.CoffeeBag) error {
	if strings.TrimSpace(bag.CoffeeName) == "" {
		return ErrCoffeeNameMissing
	}
	bag.TrackedBy = user.UserID
	bag.UpdatedAt = time.Now().UTC()

	updated, err := s.bagRepo.UpdateBag(bag)
	if err != nil {
		return fmt.Errorf("failed to update coffee bag: %w", err)
	}
	if !updated {
		return ErrBagNotFound
	}
	return nil
}

// DeleteBag removes a coffee bag owned by the user
func (s *CoffeeBagService) DeleteBag(bagID, userID string) error {
	deleted, err := s.bagRepo.DeleteBag(bagID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete coffee bag: %w", err)
	}
	if !deleted {
		return ErrBagNotFound
	}
	return nil
}

// GetUserStats summarizes a user's coffee bag history
func (s *CoffeeBagService) GetUserStats(userID string) (*models.BagStats, error) {
	bags, err := s.bagRepo.GetBagsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get coffee bags: %w", err)
	}

	stats := &models.BagStats{TotalBags: len(bags)}
	if len(bags) == 0 {
		return stats, nil
	}

	var ratingTotal float64
	var repurchase int
	origins := map[string]int{}
	for _, bag := range bags {
		ratingTotal += bag.Rating
		stats.TotalSpent += bag.Cost
		if bag.WouldBuyAgain {
			repurchase++
		}
		if bag.Origin != "" {
			origins[bag.Origin]++
		}
	}
	stats.AverageRating = ratingTotal / float64(len(bags))
	stats.RepurchaseRate = float64(repurchase) / float64(len(bags))
	stats.FavoriteOrigin = mostCommon(origins)
	return stats, nil
}
