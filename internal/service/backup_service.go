package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/rabermudezg13/coffee-cupping-app/internal/database"
	"github.com/rabermudezg13/coffee-cupping-app/internal/models"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version       string                `json:"version"`
	ExportedAt    time.Time             `json:"exported_at"`
	Users         []models.User         `json:"users"`
	Invitations   []models.Invitation   `json:"invitations"`
	Notifications []models.Notification `json:"notifications"`
	Cuppings      []models.Cupping      `json:"cuppings"`
	ShopReviews   []models.ShopReview   `json:"shop_reviews"`
	CoffeeBags    []models.CoffeeBag    `json:"coffee_bags"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes a complete backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportInvitations(backup); err != nil {
		return fmt.Errorf("failed to export invitations: %w", err)
	}
	if err := s.exportNotifications(backup); err != nil {
		return fmt.Errorf("failed to export notifications: %w", err)
	}
	if err := s.exportCuppings(backup); err != nil {
		return fmt.Errorf("failed to export cuppings: %w", err)
	}
	if err := s.exportShopReviews(backup); err != nil {
		return fmt.Errorf("failed to export shop reviews: %w", err)
	}
	if err := s.exportCoffeeBags(backup); err != nil {
		return fmt.Errorf("failed to export coffee bags: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d invitations, %d notifications, %d cuppings, %d shop reviews, %d coffee bags",
		len(backup.Users), len(backup.Invitations), len(backup.Notifications),
		len(backup.Cuppings), len(backup.ShopReviews), len(backup.CoffeeBags))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importInvitations(backup.Invitations); err != nil {
		return fmt.Errorf("failed to import invitations: %w", err)
	}
	if err := s.importNotifications(backup.Notifications); err != nil {
		return fmt.Errorf("failed to import notifications: %w", err)
	}
	if err := s.importCuppings(backup.Cuppings); err != nil {
		return fmt.Errorf("failed to import cuppings: %w", err)
	}
	if err := s.importShopReviews(backup.ShopReviews); err != nil {
		return fmt.Errorf("failed to import shop reviews: %w", err)
	}
	if err := s.importCoffeeBags(backup.CoffeeBags); err != nil {
		return fmt.Errorf("failed to import coffee bags: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT user_id, email, username, password_hash, oauth_provider, oauth_subject, show_name, created_at, updated_at, last_login_at
		FROM users ORDER BY created_at
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserID, &u.Email, &u.Username, &u.PasswordHash,
			&u.OAuthProvider, &u.OAuthSubject, &u.ShowName, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportInvitations(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT invitation_id, inviter_id, inviter_name, session_data, status, created_at, expires_at
		FROM invitations ORDER BY created_at
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var inv models.Invitation
		var sessionData string
		if err := rows.Scan(&inv.InvitationID, &inv.InviterID, &inv.InviterName,
			&sessionData, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(sessionData), &inv.SessionData); err != nil {
			return err
		}
		backup.Invitations = append(backup.Invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range backup.Invitations {
		inv := &backup.Invitations[i]
		if err := s.exportInvitationDetails(inv); err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) exportInvitationDetails(inv *models.Invitation) error {
	rows, err := s.db.Query("SELECT user_id, username, email FROM invitation_invitees WHERE invitation_id = ?", inv.InvitationID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var invitee models.InviteeUser
		if err := rows.Scan(&invitee.UserID, &invitee.Username, &invitee.Email); err != nil {
			return err
		}
		inv.InviteeUsers = append(inv.InviteeUsers, invitee)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	inv.Responses = map[string]models.InvitationResponse{}
	respRows, err := s.db.Query("SELECT user_id, response, user_name, responded_at FROM invitation_responses WHERE invitation_id = ?", inv.InvitationID)
	if err != nil {
		return err
	}
	defer respRows.Close()
	for respRows.Next() {
		var userID string
		var r models.InvitationResponse
		if err := respRows.Scan(&userID, &r.Response, &r.UserName, &r.RespondedAt); err != nil {
			return err
		}
		inv.Responses[userID] = r
	}
	if err := respRows.Err(); err != nil {
		return err
	}

	inv.ParticipantEvaluations = map[string]models.ParticipantEvaluation{}
	evalRows, err := s.db.Query("SELECT user_id, user_name, evaluation, submitted_at FROM invitation_evaluations WHERE invitation_id = ?", inv.InvitationID)
	if err != nil {
		return err
	}
	defer evalRows.Close()
	for evalRows.Next() {
		var userID, payload string
		var e models.ParticipantEvaluation
		if err := evalRows.Scan(&userID, &e.UserName, &payload, &e.SubmittedAt); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(payload), &e.Evaluation); err != nil {
			return err
		}
		inv.ParticipantEvaluations[userID] = e
	}
	return evalRows.Err()
}

func (s *BackupService) exportNotifications(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT notification_id, invitation_id, recipient_user_id, recipient_username, recipient_email, inviter_name, coffee_name, session_type, message, is_read, created_at, type
		FROM notifications ORDER BY created_at
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.NotificationID, &n.InvitationID, &n.RecipientUserID,
			&n.RecipientUsername, &n.RecipientEmail, &n.InviterName, &n.CoffeeName,
			&n.SessionType, &n.Message, &n.IsRead, &n.CreatedAt, &n.Type); err != nil {
			return err
		}
		backup.Notifications = append(backup.Notifications, n)
	}
	return rows.Err()
}

func (s *BackupService) exportCuppings(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT cupping_id, user_id, coffee_name, origin, roaster, process_method, brew_method, overall_score, evaluation, flavor_notes, notes, is_public, created_at, updated_at
		FROM cuppings ORDER BY created_at
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Cupping
		var evaluation string
		if err := rows.Scan(&c.CuppingID, &c.UserID, &c.CoffeeName, &c.Origin, &c.Roaster,
			&c.ProcessMethod, &c.BrewMethod, &c.OverallScore, &evaluation,
			&c.FlavorNotes, &c.Notes, &c.IsPublic, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(evaluation), &c.Evaluation); err != nil {
			return err
		}
		backup.Cuppings = append(backup.Cuppings, c)
	}
	return rows.Err()
}

func (s *BackupService) exportShopReviews(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT review_id, reviewed_by, reviewer_name, shop_name, city, coffee_rating, latte_art_rating, preparation_method, notes, is_public, created_at, updated_at
		FROM shop_reviews ORDER BY created_at
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r models.ShopReview
		if err := rows.Scan(&r.ReviewID, &r.ReviewedBy, &r.ReviewerName, &r.ShopName,
			&r.City, &r.CoffeeRating, &r.LatteArtRating, &r.PreparationMethod,
			&r.Notes, &r.IsPublic, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return err
		}
		backup.ShopReviews = append(backup.ShopReviews, r)
	}
	return rows.Err()
}

func (s *BackupService) exportCoffeeBags(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT bag_id, tracked_by, tracker_name, coffee_name, roaster, origin, process_method, roast_date, cost, weight_grams, rating, would_buy_again, notes, is_public, created_at, updated_at
		FROM coffee_bags ORDER BY created_at
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var b models.CoffeeBag
		if err := rows.Scan(&b.BagID, &b.TrackedBy, &b.TrackerName, &b.CoffeeName, &b.Roaster,
			&b.Origin, &b.ProcessMethod, &b.RoastDate, &b.Cost, &b.WeightGrams,
			&b.Rating, &b.WouldBuyAgain, &b.Notes, &b.IsPublic, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return err
		}
		backup.CoffeeBags = append(backup.CoffeeBags, b)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []models.User) error {
	for _, u := range users {
		_, err := s.db.Exec(`
			INSERT INTO users (user_id, email, username, password_hash, oauth_provider, oauth_subject, show_name, created_at, updated_at, last_login_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, u.UserID, u.Email, u.Username, u.PasswordHash, u.OAuthProvider, u.OAuthSubject, u.ShowName, u.CreatedAt, u.UpdatedAt, u.LastLoginAt)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.Username, err)
		}
	}
	return nil
}

func (s *BackupService) importInvitations(invitations []models.Invitation) error {
	for _, inv := range invitations {
		sessionData, err := json.Marshal(inv.SessionData)
		if err != nil {
			return fmt.Errorf("invitation %s: %w", inv.InvitationID, err)
		}
		_, err = s.db.Exec(`
			INSERT INTO invitations (invitation_id, inviter_id, inviter_name, session_data, status, created_at, expires_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, inv.InvitationID, inv.InviterID, inv.InviterName, string(sessionData), inv.Status, inv.CreatedAt, inv.ExpiresAt)
		if err != nil {
			return fmt.Errorf("invitation %s: %w", inv.InvitationID, err)
		}

		for _, invitee := range inv.InviteeUsers {
			_, err := s.db.Exec(`
				INSERT INTO invitation_invitees (invitation_id, user_id, username, email)
				VALUES (?, ?, ?, ?)
			`, inv.InvitationID, invitee.UserID, invitee.Username, invitee.Email)
			if err != nil {
				return fmt.Errorf("invitation %s invitee %s: %w", inv.InvitationID, invitee.Username, err)
			}
		}

		for userID, r := range inv.Responses {
			_, err := s.db.Exec(`
				INSERT INTO invitation_responses (invitation_id, user_id, response, user_name, responded_at)
				VALUES (?, ?, ?, ?, ?)
			`, inv.InvitationID, userID, r.Response, r.UserName, r.RespondedAt)
			if err != nil {
				return fmt.Errorf("invitation %s response %s: %w", inv.InvitationID, userID, err)
			}
		}

		for userID, e := range inv.ParticipantEvaluations {
			payload, err := json.Marshal(e.Evaluation)
			if err != nil {
				return fmt.Errorf("invitation %s evaluation %s: %w", inv.InvitationID, userID, err)
			}
			_, err = s.db.Exec(`
				INSERT INTO invitation_evaluations (invitation_id, user_id, user_name, evaluation, submitted_at)
				VALUES (?, ?, ?, ?, ?)
			`, inv.InvitationID, userID, e.UserName, string(payload), e.SubmittedAt)
			if err != nil {
				return fmt.Errorf("invitation %s evaluation %s: %w", inv.InvitationID, userID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importNotifications(notifications []models.Notification) error {
	for _, n := range notifications {
		_, err := s.db.Exec(`
			INSERT INTO notifications (notification_id, invitation_id, recipient_user_id, recipient_username, recipient_email, inviter_name, coffee_name, session_type, message, is_read, created_at, type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, n.NotificationID, n.InvitationID, n.RecipientUserID, n.RecipientUsername, n.RecipientEmail,
			n.InviterName, n.CoffeeName, n.SessionType, n.Message, n.IsRead, n.CreatedAt, n.Type)
		if err != nil {
			return fmt.Errorf("notification %s: %w", n.NotificationID, err)
		}
	}
	return nil
}

func (s *BackupService) importCuppings(cuppings []models.Cupping) error {
	for _, c := range cuppings {
		evaluation, err := json.Marshal(c.Evaluation)
		if err != nil {
			return fmt.Errorf("cupping %s: %w", c.CuppingID, err)
		}
		_, err = s.db.Exec(`
			INSERT INTO cuppings (cupping_id, user_id, coffee_name, origin, roaster, process_method, brew_method, overall_score, evaluation, flavor_notes, notes, is_public, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.CuppingID, c.UserID, c.CoffeeName, c.Origin, c.Roaster, c.ProcessMethod, c.BrewMethod,
			c.OverallScore, string(evaluation), c.FlavorNotes, c.Notes, c.IsPublic, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("cupping %s: %w", c.CuppingID, err)
		}
	}
	return nil
}

func (s *BackupService) importShopReviews(reviews []models.ShopReview) error {
	for _, r := range reviews {
		_, err := s.db.Exec(`
			INSERT INTO shop_reviews (review_id, reviewed_by, reviewer_name, shop_name, city, coffee_rating, latte_art_rating, preparation_method, notes, is_public, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, r.ReviewID, r.ReviewedBy, r.ReviewerName, r.ShopName, r.City, r.CoffeeRating,
			r.LatteArtRating, r.PreparationMethod, r.Notes, r.IsPublic, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("review %s: %w", r.ReviewID, err)
		}
	}
	return nil
}

func (s *BackupService) importCoffeeBags(bags []models.CoffeeBag) error {
	for _, b := range bags {
		_, err := s.db.Exec(`
			INSERT INTO coffee_bags (bag_id, tracked_by, tracker_name, coffee_name, roaster, origin, process_method, roast_date, cost, weight_grams, rating, would_buy_again, notes, is_public, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, b.BagID, b.TrackedBy, b.TrackerName, b.CoffeeName, b.Roaster, b.Origin, b.ProcessMethod,
			b.RoastDate, b.Cost, b.WeightGrams, b.Rating, b.WouldBuyAgain, b.Notes, b.IsPublic, b.CreatedAt, b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("coffee bag %s: %w", b.BagID, err)
		}
	}
	return nil
}
