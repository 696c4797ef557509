package repository

import (
	"database/sql"
	"fmt"

	"github.com/rabermudezg13/coffee-cupping-app/internal/database"
	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

const coffeeBagColumns = "bag_id, tracked_by, tracker_name, coffee_name, roaster, origin, process_method, roast_date, cost, weight_grams, rating, would_buy_again, notes, is_public, created_at, updated_at"

// CoffeeBagRepository handles database operations for coffee bag tracking
type CoffeeBagRepository struct {
	db *database.DB
}

// NewCoffeeBagRepository creates a new coffee bag repository
func NewCoffeeBagRepository(db *database.DB) *CoffeeBagRepository {
	return &CoffeeBagRepository{db: db}
}

// CreateBag inserts a new coffee bag record
func (r *CoffeeBagRepository) CreateBag(bag *models.CoffeeBag) error {
	query := `
		INSERT INTO coffee_bags (` + coffeeBagColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		bag.BagID, bag.TrackedBy, bag.TrackerName, bag.CoffeeName, bag.Roaster,
		bag.Origin, bag.ProcessMethod, bag.RoastDate, bag.Cost, bag.WeightGrams,
		bag.Rating, bag.WouldBuyAgain, bag.Notes, bag.IsPublic, bag.CreatedAt, bag.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create coffee bag: %w", err)
	}
	return nil
}

// GetBag retrieves a coffee bag by ID, or nil when not found
func (r *CoffeeBagRepository) GetBag(bagID string) (*models.CoffeeBag, error) {
	query := "SELECT " + coffeeBagColumns + " FROM coffee_bags WHERE bag_id = ?"
	bag := &models.CoffeeBag{}
	err := r.db.QueryRow(query, bagID).Scan(
		&bag.BagID, &bag.TrackedBy, &bag.TrackerName, &bag.CoffeeName, &bag.Roaster,
		&bag.Origin, &bag.ProcessMethod, &bag.RoastDate, &bag.Cost, &bag.WeightGrams,
		&bag.Rating, &bag.WouldBuyAgain, &bag.Notes, &bag.IsPublic, &bag.CreatedAt, &bag.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coffee bag: %w", err)
	}
	return bag, nil
}

// GetBagsByUser retrieves a user's coffee bags, newest first
func (r *CoffeeBagRepository) GetBagsByUser(userID string) ([]models.CoffeeBag, error) {
	query := "SELECT " + coffeeBagColumns + " FROM coffee_bags WHERE tracked_by = ? ORDER BY created_at DESC"
	return r.queryBags(query, userID)
}

// GetPublicBags retrieves publicly shared coffee bags, newest first
func (r *CoffeeBagRepository) GetPublicBags(limit int) ([]models.CoffeeBag, error) {
	query := "SELECT " + coffeeBagColumns + " FROM coffee_bags WHERE is_public = ? ORDER BY created_at DESC LIMIT ?"
	return r.queryBags(query, true, limit)
}

// UpdateBag updates an existing coffee bag, scoped to its tracker
func (r *CoffeeBagRepository) UpdateBag(bag *models.CoffeeBag) (bool, error) {
	query := `
		UPDATE coffee_bags
		SET coffee_name = ?, roaster = ?, origin = ?, process_method = ?, roast_date = ?,
			cost = ?, weight_grams = ?, rating = ?, would_buy_again = ?, notes = ?,
			is_public = ?, updated_at = ?
		WHERE bag_id = ? AND tracked_by = ?
	`
	result, err := r.db.Exec(query,
		bag.CoffeeName, bag.Roaster, bag.Origin, bag.ProcessMethod, bag.RoastDate,
		bag.Cost, bag.WeightGrams, bag.Rating, bag.WouldBuyAgain, bag.Notes,
		bag.IsPublic, bag.UpdatedAt,
		bag.BagID, bag.TrackedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update coffee bag: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// DeleteBag removes a coffee bag, scoped to its tracker
func (r *CoffeeBagRepository) DeleteBag(bagID, userID string) (bool, error) {
	query := "DELETE FROM coffee_bags WHERE bag_id = ? AND tracked_by = ?"
	result, err := r.db.Exec(query, bagID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete coffee bag: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return rows > 0, nil
}

func (r *CoffeeBagRepository) queryBags(query string, args ...interface{}) ([]models.CoffeeBag, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query coffee bags: %w", err)
	}
	defer rows.Close()

	var bags []models.CoffeeBag
	for rows.Next() {
		var bag models.CoffeeBag
		if err := rows.Scan(
			&bag.BagID, &bag.TrackedBy, &bag.TrackerName, &bag.CoffeeName, &bag.Roaster,
			&bag.Origin, &bag.ProcessMethod, &bag.RoastDate, &bag.Cost, &bag.WeightGrams,
			&bag.Rating, &bag.WouldBuyAgain, &bag.Notes, &bag.IsPublic, &bag.CreatedAt, &bag.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan coffee bag: %w", err)
		}
		bags = append(bags, bag)
	}
	return bags, rows.Err()
}
