package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

// FavoriteRepository caches the account's favorites in the favorites table.
//
// The backend remains the source of truth; this cache lets `favorites list`
// answer without a network round trip and is refreshed by tasks.SyncFavorites.
// Duplicate rows are silently ignored (UNIQUE constraint on entity_type +
// entity_id).
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new [FavoriteRepository] with the given database connection
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Upsert caches a favorite.
// Returns nil if the favorite is already cached (deduplication).
func (r *FavoriteRepository) Upsert(fav models.Favorite) error {
	query := `
		INSERT INTO favorites (id, entity_type, entity_id, name, image, cached_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, shared.GenerateID(), fav.EntityType, fav.EntityID, fav.Name, fav.Image, time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache favorite: %w", err)
	}

	return nil
}

// List returns all cached favorites, newest first.
func (r *FavoriteRepository) List() ([]models.Favorite, error) {
	query := `
		SELECT entity_type, entity_id, name, image
		FROM favorites
		ORDER BY cached_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var fav models.Favorite
		if err := rows.Scan(&fav.EntityType, &fav.EntityID, &fav.Name, &fav.Image); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	return favorites, nil
}

// Remove deletes a cached favorite. Removing a missing row is not an error.
func (r *FavoriteRepository) Remove(entityType, entityID string) error {
	query := `DELETE FROM favorites WHERE entity_type = ? AND entity_id = ?`

	if _, err := r.db.Exec(query, entityType, entityID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

// Replace swaps the entire cache for the given set inside one transaction.
//
// Used after a full sync from the backend so stale rows disappear.
func (r *FavoriteRepository) Replace(favorites []models.Favorite) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM favorites`); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	query := `
		INSERT INTO favorites (id, entity_type, entity_id, name, image, cached_at) VALUES (?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	for _, fav := range favorites {
		if _, err := tx.Exec(query, shared.GenerateID(), fav.EntityType, fav.EntityID, fav.Name, fav.Image, now); err != nil {
			return fmt.Errorf("failed to insert favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit favorites: %w", err)
	}

	return nil
}
