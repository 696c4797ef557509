package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rabermudezg13/coffee-cupping-app/internal/database"
	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

const cuppingColumns = "cupping_id, user_id, coffee_name, origin, roaster, process_method, brew_method, overall_score, evaluation, flavor_notes, notes, is_public, created_at, updated_at"

// CuppingRepository handles database operations for cupping records
type CuppingRepository struct {
	db *database.DB
}

// NewCuppingRepository creates a new cupping repository
func NewCuppingRepository(db *database.DB) *CuppingRepository {
	return &CuppingRepository{db: db}
}

// CreateCupping inserts a new cupping record
func (r *CuppingRepository) CreateCupping(c *models.Cupping) error {
	evaluation, err := json.Marshal(c.Evaluation)
	if err != nil {
		return fmt.Errorf("failed to encode evaluation: %w", err)
	}

	query := `
		INSERT INTO cuppings (` + cuppingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		c.CuppingID, c.UserID, c.CoffeeName, c.Origin, c.Roaster,
		c.ProcessMethod, c.BrewMethod, c.OverallScore, string(evaluation),
		c.FlavorNotes, c.Notes, c.IsPublic, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create cupping: %w", err)
	}
	return nil
}

// GetCupping retrieves a cupping by ID, or nil when not found
func (r *CuppingRepository) GetCupping(cuppingID string) (*models.Cupping, error) {
	query := "SELECT " + cuppingColumns + " FROM cuppings WHERE cupping_id = ?"
	row := r.db.QueryRow(query, cuppingID)

	c, err := scanCupping(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cupping: %w", err)
	}
	return c, nil
}

// GetCuppingsByUser retrieves a user's cuppings, newest first
func (r *CuppingRepository) GetCuppingsByUser(userID string) ([]models.Cupping, error) {
	query := "SELECT " + cuppingColumns + " FROM cuppings WHERE user_id = ? ORDER BY created_at DESC"
	return r.queryCuppings(query, userID)
}

// GetPublicCuppings retrieves publicly shared cuppings, newest first
func (r *CuppingRepository) GetPublicCuppings(limit int) ([]models.Cupping, error) {
	query := "SELECT " + cuppingColumns + " FROM cuppings WHERE is_public = ? ORDER BY created_at DESC LIMIT ?"
	return r.queryCuppings(query, true, limit)
}

// SearchCuppings retrieves cuppings matching the given filters
func (r *CuppingRepository) SearchCuppings(search models.CuppingSearch) ([]models.Cupping, error) {
	query := "SELECT " + cuppingColumns + " FROM cuppings WHERE 1=1"
	var args []interface{}

	if search.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, search.UserID)
	}
	if search.CoffeeName != "" {
		query += " AND coffee_name LIKE ?"
		args = append(args, "%"+search.CoffeeName+"%")
	}
	if search.Origin != "" {
		query += " AND origin LIKE ?"
		args = append(args, "%"+search.Origin+"%")
	}
	if search.Roaster != "" {
		query += " AND roaster LIKE ?"
		args = append(args, "%"+search.Roaster+"%")
	}

	query += " ORDER BY created_at DESC"
	if search.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, search.Limit)
	}

	return r.queryCuppings(query, args...)
}

// UpdateCupping updates an existing cupping, scoped to its owner
func (r *CuppingRepository) UpdateCupping(c *models.Cupping) (bool, error) {
	evaluation, err := json.Marshal(c.Evaluation)
	if err != nil {
		return false, fmt.Errorf("failed to encode evaluation: %w", err)
	}

	query := `
		UPDATE cuppings
		SET coffee_name = ?, origin = ?, roaster = ?, process_method = ?, brew_method = ?,
			overall_score = ?, evaluation = ?, flavor_notes = ?, notes = ?, is_public = ?, updated_at = ?
		WHERE cupping_id = ? AND user_id = ?
	`
	result, err := r.db.Exec(query,
		c.CoffeeName, c.Origin, c.Roaster, c.ProcessMethod, c.BrewMethod,
		c.OverallScore, string(evaluation), c.FlavorNotes, c.Notes, c.IsPublic, c.UpdatedAt,
		c.CuppingID, c.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update cupping: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows > 0, nil
}

// DeleteCupping removes a cupping, scoped to its owner
func (r *CuppingRepository) DeleteCupping(cuppingID, userID string) (bool, error) {
	query := "DELETE FROM cuppings WHERE cupping_id = ? AND user_id = ?"
	result, err := r.db.Exec(query, cuppingID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete cupping: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return rows > 0, nil
}

func (r *CuppingRepository) queryCuppings(query string, args ...interface{}) ([]models.Cupping, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cuppings: %w", err)
	}
	defer rows.Close()

	var cuppings []models.Cupping
	for rows.Next() {
		c, err := scanCupping(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cupping: %w", err)
		}
		cuppings = append(cuppings, *c)
	}
	return cuppings, rows.Err()
}

func scanCupping(scan func(dest ...interface{}) error) (*models.Cupping, error) {
	c := &models.Cupping{}
	var evaluation string
	err := scan(
		&c.CuppingID, &c.UserID, &c.CoffeeName, &c.Origin, &c.Roaster,
		&c.ProcessMethod, &c.BrewMethod, &c.OverallScore, &evaluation,
		&c.FlavorNotes, &c.Notes, &c.IsPublic, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(evaluation), &c.Evaluation); err != nil {
		return nil, fmt.Errorf("failed to decode evaluation: %w", err)
	}
	return c, nil
}
