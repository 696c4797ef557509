package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
	"github.com/rabermudezg13/coffee-cupping-app/internal/repository"
	"github.com/rabermudezg13/coffee-cupping-app/internal/scoring"
)

var (
	ErrCuppingNotFound   = errors.New("cupping not found")
	ErrCoffeeNameMissing = errors.New("coffee name is required")
)

// CuppingService handles single-user cupping records
type CuppingService struct {
	cuppingRepo *repository.CuppingRepository
}

// NewCuppingService creates a new cupping service
func NewCuppingService(cuppingRepo *repository.CuppingRepository) *CuppingService {
	return &CuppingService{cuppingRepo: cuppingRepo}
}

// CreateCupping records a new cupping. When attribute scores and defects
// are supplied the overall score is computed from them; otherwise the
// caller's overall score is stored as-is.
func (s *CuppingService) CreateCupping(user *models.User, c *models.Cupping, attributes map[string]float64, defects map[string]int) (*models.Cupping, error) {
	if strings.TrimSpace(c.CoffeeName) == "" {
		return nil, ErrCoffeeNameMissing
	}

	if len(attributes) > 0 {
		result, err := scoring.Score(attributes, defects)
		if err != nil {
			return nil, err
		}
		c.OverallScore = result.FinalScore
	}

	now := time.Now().UTC()
	c.CuppingID = uuid.New().String()
	c.UserID = user.UserID
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Evaluation == nil {
		c.Evaluation = models.EvaluationPayload{}
	}

	if err := s.cuppingRepo.CreateCupping(c); err != nil {
		return nil, fmt.Errorf("failed to create cupping: %w", err)
	}
	return c, nil
}

// GetCupping returns one cupping by ID
func (s *CuppingService) GetCupping(cuppingID string) (*models.Cupping, error) {
	c, err := s.cuppingRepo.GetCupping(cuppingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cupping: %w", err)
	}
	if c == nil {
		return nil, ErrCuppingNotFound
	}
	return c, nil
}

// GetUserCuppings returns a user's cuppings, newest first
func (s *CuppingService) GetUserCuppings(userID string) ([]models.Cupping, error) {
	cuppings, err := s.cuppingRepo.GetCuppingsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cuppings: %w", err)
	}
	return cuppings, nil
}

// GetPublicCuppings returns publicly shared cuppings, newest first
func (s *CuppingService) GetPublicCuppings(limit int) ([]models.Cupping, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	cuppings, err := s.cuppingRepo.GetPublicCuppings(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get public cuppings: %w", err)
	}
	return cuppings, nil
}

// SearchCuppings returns cuppings matching the given filters
func (s *CuppingService) SearchCuppings(search models.CuppingSearch) ([]models.Cupping, error) {
	if search.Limit <= 0 || search.Limit > 100 {
		search.Limit = 50
	}
	cuppings, err := s.cuppingRepo.SearchCuppings(search)
	if err != nil {
		return nil, fmt.Errorf("failed to search cuppings: %w", err)
	}
	return cuppings, nil
}

// UpdateCupping updates a cupping owned by the user
func (s *CuppingService) UpdateCupping(user *models.User, c *models.Cupping) error {
	if strings.TrimSpace(c.CoffeeName) == "" {
		return ErrCoffeeNameMissing
	}
	c.UserID = user.UserID
	c.UpdatedAt = time.Now().UTC()

	updated, err := s.cuppingRepo.UpdateCupping(c)
	if err != nil {
		return fmt.Errorf("failed to update cupping: %w", err)
	}
	if !updated {
		return ErrCuppingNotFound
	}
	return nil
}

// DeleteCupping removes a cupping owned by the user
func (s *CuppingService) DeleteCupping(cuppingID, userID string) error {
	deleted, err := s.cuppingRepo.DeleteCupping(cuppingID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cupping: %w", err)
	}
	if !deleted {
		return ErrCuppingNotFound
	}
	return nil
}

// GetUserStats summarizes a user's cupping history
func (s *CuppingService) GetUserStats(userID string) (*models.CuppingStats, error) {
	cuppings, err := s.cuppingRepo.GetCuppingsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cuppings: %w", err)
	}

	stats := &models.CuppingStats{TotalCuppings: len(cuppings)}
	if len(cuppings) == 0 {
		return stats, nil
	}

	var total float64
	origins := map[string]int{}
	roasters := map[string]int{}
	for _, c := range cuppings {
		total += c.OverallScore
		if c.Origin != "" {
			origins[c.Origin]++
		}
		if c.Roaster != "" {
			roasters[c.Roaster]++
		}
	}
	stats.AverageScore = total / float64(len(cuppings))
	stats.FavoriteOrigin = mostCommon(origins)
	stats.FavoriteRoaster = mostCommon(roasters)
	return stats, nil
}

// mostCommon returns the key with the highest count, ties broken by
// lexicographic order for stable output
func mostCommon(counts map[string]int) string {
	best := ""
	bestCount := 0
	for key, count := range counts {
		if count > bestCount || (count == bestCount && best != "" && key < best) {
			best = key
			bestCount = count
		}
	}
	return best
}
