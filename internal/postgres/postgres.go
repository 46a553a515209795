// Package postgres is the hosted persistence backend: one table per entity
// kind, every row scoped by an owner id, CRUD operations returning the
// persisted row, and a live change feed for the transactions table.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Client wraps a shared database handle. Create one per process and reuse
// it; Close releases the pool.
type Client struct {
	db   *sql.DB
	conn string
	log  zerolog.Logger
}

// Open connects to the backend and verifies the connection.
func Open(conn string, log zerolog.Logger) (*Client, error) {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open: ping: %w", err)
	}
	return &Client{db: db, conn: conn, log: log}, nil
}

// Close closes the underlying pool.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// nullable maps an optional reference to its column value. Dangling
// references are stored as NULL, never as empty strings.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
