package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, etc. instead of ?
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for PostgreSQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// PostgreSQL has foreign keys enabled by default, no pragma needed
	return nil
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *PostgresDialect) UpsertResponseQuery() string {
	return `
		INSERT INTO invitation_responses (invitation_id, user_id, response, user_name, responded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (invitation_id, user_id) DO UPDATE SET
			response = excluded.response,
			user_name = excluded.user_name,
			responded_at = excluded.responded_at
	`
}

func (d *PostgresDialect) UpsertEvaluationQuery() string {
	return `
		INSERT INTO invitation_evaluations (invitation_id, user_id, user_name, evaluation, submitted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (invitation_id, user_id) DO UPDATE SET
			user_name = excluded.user_name,
			evaluation = excluded.evaluation,
			submitted_at = excluded.submitted_at
	`
}
