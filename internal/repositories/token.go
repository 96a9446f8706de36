package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// tokenKey is the fixed row key for the single persisted session token.
const tokenKey = "auth_token"

// TokenRepository persists the session token in the session_tokens table.
//
// Implements session.TokenStore. The table holds at most one row per key and
// the client only ever uses one key, so Save is an upsert.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new [TokenRepository] with the given database connection
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Load returns the persisted token, or "" when none has been saved.
func (r *TokenRepository) Load() (string, error) {
	query := `SELECT token FROM session_tokens WHERE key = ?`

	var token string
	err := r.db.QueryRow(query, tokenKey).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}

	return token, nil
}

// Save stores the token, replacing any previously saved one.
func (r *TokenRepository) Save(token string) error {
	query := `
		INSERT INTO session_tokens (key, token, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, tokenKey, token, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// Clear removes the persisted token. Clearing an empty store is not an error.
func (r *TokenRepository) Clear() error {
	query := `DELETE FROM session_tokens WHERE key = ?`

	if _, err := r.db.Exec(query, tokenKey); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	return nil
}
