package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/desertthunder/songbox/internal/models"
)

// SearchCategory selects which backend search endpoint a query hits.
type SearchCategory string

const (
	SearchAlbums   SearchCategory = "album"
	SearchSongs    SearchCategory = "song"
	SearchArtists  SearchCategory = "artist"
	SearchProfiles SearchCategory = "profile"
)

// Endpoint returns the backend path for the category.
func (c SearchCategory) Endpoint() (string, error) {
	switch c {
	case SearchAlbums:
		return "/search_album", nil
	case SearchSongs:
		return "/search_song", nil
	case SearchArtists:
		return "/search_artist", nil
	case SearchProfiles:
		return "/search_profile", nil
	default:
		return "", fmt.Errorf("unknown search category: %s", string(c))
	}
}

// Search queries one category of the catalog.
//
// limit defaults to 10 when non-positive; only the result field matching the
// category is populated.
func (s *SongBoxService) Search(ctx context.Context, category SearchCategory, q string, limit int) (*models.SearchResults, error) {
	if q == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = 10
	}

	endpoint, err := category.Endpoint()
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"q":     {q},
		"limit": {strconv.Itoa(limit)},
	}

	var results models.SearchResults
	if err := s.get(ctx, endpoint, query, &results); err != nil {
		return nil, err
	}

	return &results, nil
}
