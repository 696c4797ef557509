package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	// Skip if not in integration test mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_integration.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Test that tables were created by migrations
	tables := []string{
		"users", "sessions", "password_reset_tokens",
		"invitations", "invitation_invitees", "invitation_responses",
		"invitation_evaluations", "notifications",
		"cuppings", "shop_reviews", "coffee_bags",
	}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		err := db.QueryRowContext(ctx, query, table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_transactions.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	now := time.Now().UTC()

	// Test successful transaction
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	userID := uuid.New().String()
	_, err = tx.Exec("INSERT INTO users (user_id, email, username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		userID, "test@example.com", "testuser", "hashedpass", now, now)
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	// Verify data was inserted
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", "testuser").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}

	// Test rollback
	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}

	_, err = tx2.Exec("INSERT INTO users (user_id, email, username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.New().String(), "test2@example.com", "testuser2", "hashedpass", now, now)
	if err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}

	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	// Verify data was not inserted
	err = db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", "testuser2").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 users after rollback, got %d", count)
	}
}

// TestResponseUpsert verifies the dialect upsert overwrites on conflict
func TestResponseUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_upsert.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	now := time.Now().UTC()
	invitationID := uuid.New().String()
	inviterID := uuid.New().String()
	userID := uuid.New().String()

	_, err = db.Exec("INSERT INTO invitations (invitation_id, inviter_id, inviter_name, session_data, status, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		invitationID, inviterID, "alice", "{}", "pending", now, now.Add(7*24*time.Hour))
	if err != nil {
		t.Fatalf("Failed to insert invitation: %v", err)
	}

	query := db.Dialect.UpsertResponseQuery()
	_, err = db.Exec(query, invitationID, userID, "accept", "bob", now)
	if err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	_, err = db.Exec(query, invitationID, userID, "decline", "bob", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	var response string
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM invitation_responses WHERE invitation_id = ?", invitationID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count responses: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 response row after upsert, got %d", count)
	}

	err = db.QueryRow("SELECT response FROM invitation_responses WHERE invitation_id = ? AND user_id = ?", invitationID, userID).Scan(&response)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	if response != "decline" {
		t.Errorf("Expected response 'decline' after overwrite, got '%s'", response)
	}
}
