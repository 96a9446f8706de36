// Catalog endpoints: details, global charts, listening history, videos.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/desertthunder/songbox/internal/models"
)

// AlbumDetails retrieves an album with its backend-computed rating aggregate.
func (s *SongBoxService) AlbumDetails(ctx context.Context, albumID string) (*models.Album, error) {
	if albumID == "" {
		return nil, fmt.Errorf("no album ID provided")
	}

	query := url.Values{"album_id": {albumID}}

	var resp struct {
		Album *models.Album `json:"album"`
	}
	if err := s.get(ctx, "/album_details", query, &resp); err != nil {
		return nil, err
	}

	return resp.Album, nil
}

// ArtistDetails retrieves an artist plus discography.
func (s *SongBoxService) ArtistDetails(ctx context.Context, artistID string) (*models.ArtistDetails, error) {
	if artistID == "" {
		return nil, fmt.Errorf("no artist ID provided")
	}

	query := url.Values{"artist_id": {artistID}}

	var resp models.ArtistDetails
	if err := s.get(ctx, "/artist_details", query, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// SongDetails retrieves a song with its backend-computed rating aggregate.
func (s *SongBoxService) SongDetails(ctx context.Context, songID string) (*models.Song, error) {
	if songID == "" {
		return nil, fmt.Errorf("no song ID provided")
	}

	query := url.Values{"song_id": {songID}}

	var resp struct {
		Song *models.Song `json:"song"`
	}
	if err := s.get(ctx, "/song_details", query, &resp); err != nil {
		return nil, err
	}

	return resp.Song, nil
}

// TopAlbums retrieves the global album chart.
func (s *SongBoxService) TopAlbums(ctx context.Context) ([]models.Album, error) {
	var resp struct {
		Albums []models.Album `json:"albums"`
	}
	if err := s.get(ctx, "/top_albums_global", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Albums, nil
}

// TopArtists retrieves the global artist chart.
func (s *SongBoxService) TopArtists(ctx context.Context) ([]models.Artist, error) {
	var resp struct {
		Artists []models.Artist `json:"artists"`
	}
	if err := s.get(ctx, "/top_artists_global", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Artists, nil
}

// RecentlyListened retrieves the account's listening history.
func (s *SongBoxService) RecentlyListened(ctx context.Context) ([]models.Song, error) {
	var resp struct {
		Songs []models.Song `json:"songs"`
	}
	if err := s.get(ctx, "/recently_listened", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Songs, nil
}

// Videos retrieves featured music videos.
func (s *SongBoxService) Videos(ctx context.Context) ([]models.Video, error) {
	var resp struct {
		Videos []models.Video `json:"videos"`
	}
	if err := s.get(ctx, "/videos", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Videos, nil
}
