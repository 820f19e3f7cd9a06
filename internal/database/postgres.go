package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // register postgres driver
)

// NewPostgresConnection opens the lib/pq pool every repository shares and
// verifies it with a ping, so a bad DATABASE_URL fails at startup instead of
// on the first query.
func NewPostgresConnection(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}
