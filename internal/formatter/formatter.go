// package formatter renders backend data for terminal output and file export (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

// AlbumsToCSV converts albums to CSV format with columns: ID, Name, Artist, Released, Tracks, Rating
func AlbumsToCSV(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Released", "Tracks", "Rating"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, album := range albums {
		record := []string{
			album.ID,
			album.Name,
			album.ArtistName(),
			album.ReleaseDate,
			strconv.Itoa(album.TotalTracks),
			formatRating(album.AverageRating, album.RatingCount),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// FavoritesToCSV converts favorites to CSV format with columns: Type, ID, Name
func FavoritesToCSV(favorites []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Type", "ID", "Name"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, fav := range favorites {
		record := []string{fav.EntityType, fav.EntityID, fav.Name}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// formatRating renders a backend rating aggregate like "4.2 (17)".
// Unrated entities render as a dash.
func formatRating(average float64, count int) string {
	if count == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d)", average, count)
}

// HomeView bundles home feed sections for rendering.
//
// Mirrors tasks.HomeResult without importing the tasks package, keeping
// formatter free of orchestration dependencies.
type HomeView struct {
	TopAlbums        []models.Album
	TopArtists       []models.Artist
	RecentlyListened []models.Song
	Videos           []models.Video
}

// HomeToText converts a home feed to plain text format
func HomeToText(home *HomeView) ([]byte, error) {
	var buf bytes.Buffer

	if len(home.TopAlbums) > 0 {
		buf.WriteString("Top Albums\n")
		for i, album := range home.TopAlbums {
			buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, album.ArtistName(), album.Name, formatRating(album.AverageRating, album.RatingCount)))
		}
		buf.WriteString("\n")
	}

	if len(home.TopArtists) > 0 {
		buf.WriteString("Top Artists\n")
		for i, artist := range home.TopArtists {
			buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, artist.Name, formatRating(artist.AverageRating, artist.RatingCount)))
		}
		buf.WriteString("\n")
	}

	if len(home.RecentlyListened) > 0 {
		buf.WriteString("Recently Listened\n")
		for i, song := range home.RecentlyListened {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Name))
		}
		buf.WriteString("\n")
	}

	if len(home.Videos) > 0 {
		buf.WriteString("Videos\n")
		for i, video := range home.Videos {
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, video.Title, video.Channel))
		}
	}

	return buf.Bytes(), nil
}

// AlbumToText converts an album detail to plain text format
func AlbumToText(album *models.Album) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Album: %s\n", album.Name))
	buf.WriteString(fmt.Sprintf("Artist: %s\n", album.ArtistName()))
	if album.ReleaseDate != "" {
		buf.WriteString(fmt.Sprintf("Released: %s\n", album.ReleaseDate))
	}
	if album.TotalTracks > 0 {
		buf.WriteString(fmt.Sprintf("Tracks: %d\n", album.TotalTracks))
	}
	buf.WriteString(fmt.Sprintf("Rating: %s\n", formatRating(album.AverageRating, album.RatingCount)))
	if album.URL != "" {
		buf.WriteString(fmt.Sprintf("URL: %s\n", album.URL))
	}

	return buf.Bytes()
}

// ArtistToMarkdown converts an artist detail with discography to Markdown format
func ArtistToMarkdown(details *models.ArtistDetails) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", details.Artist.Name))

	if len(details.Artist.Genres) > 0 {
		buf.WriteString("**Genres**: ")
		for i, genre := range details.Artist.Genres {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(genre)
		}
		buf.WriteString("\n\n")
	}

	buf.WriteString(fmt.Sprintf("**Rating**: %s\n\n", formatRating(details.Artist.AverageRating, details.Artist.RatingCount)))

	if len(details.Albums) > 0 {
		buf.WriteString("## Albums\n\n")
		for i, album := range details.Albums {
			yearPart := ""
			if album.ReleaseDate != "" {
				yearPart = fmt.Sprintf(" (%s)", album.ReleaseDate)
			}
			buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, album.Name, yearPart))
		}
	}

	return buf.Bytes()
}

// CommentsToText converts a comment page to plain text format
func CommentsToText(page *models.CommentPage) []byte {
	var buf bytes.Buffer

	if len(page.Comments) == 0 {
		buf.WriteString("No comments.\n")
		return buf.Bytes()
	}

	for _, comment := range models.SortCommentsByLikes(page.Comments) {
		buf.WriteString(fmt.Sprintf("[%s] %s (+%d/-%d)\n", comment.ID, comment.Username, comment.Likes, comment.Dislikes))
		buf.WriteString(fmt.Sprintf("  %s\n", comment.Text))
	}

	if page.Pagination.TotalPages > 1 {
		buf.WriteString(fmt.Sprintf("\nPage %d of %d\n", page.Pagination.Page, page.Pagination.TotalPages))
	}

	return buf.Bytes()
}

// FavoritesToText converts favorites to plain text format
func FavoritesToText(favorites []models.Favorite) []byte {
	var buf bytes.Buffer

	if len(favorites) == 0 {
		buf.WriteString("No favorites.\n")
		return buf.Bytes()
	}

	for i, fav := range favorites {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s (%s)\n", i+1, fav.EntityType, fav.Name, fav.EntityID))
	}

	return buf.Bytes()
}

// SearchResultsToText converts search results to plain text format.
// Only the populated category renders.
func SearchResultsToText(results *models.SearchResults) []byte {
	var buf bytes.Buffer

	for i, album := range results.Albums {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, album.ArtistName(), album.Name, album.ID))
	}
	for i, song := range results.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, song.Artist, song.Name, song.ID))
	}
	for i, artist := range results.Artists {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, artist.Name, artist.ID))
	}
	for i, profile := range results.Profiles {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, profile.Username, profile.ID))
	}

	if buf.Len() == 0 {
		buf.WriteString("No results.\n")
	}

	return buf.Bytes()
}

// ToProfileJSON generates a JSON representation of a profile
func ToProfileJSON(profile *models.ProfileDetails) ([]byte, error) {
	return shared.MarshalJSON(profile, true)
}

// CSVExportResult contains the path of the file created by WriteFavoritesCSV
type CSVExportResult struct {
	File string
}

// WriteFavoritesCSV exports the favorites list to a CSV file.
//
// Defaults to favorites.csv when no path is given.
func WriteFavoritesCSV(favorites []models.Favorite, filepath string) (*CSVExportResult, error) {
	if filepath == "" {
		filepath = "favorites.csv"
	}

	csvData, err := FavoritesToCSV(favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &CSVExportResult{File: filepath}, nil
}
