package models

import (
	"encoding/json"
	"sort"
)

// User represents the authenticated account as returned by /login, /register and /me.
type User struct {
	ID        json.Number `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	Following []string    `json:"following"`
}

// Follows reports whether the user follows the given profile.
func (u *User) Follows(profileID string) bool {
	for _, id := range u.Following {
		if id == profileID {
			return true
		}
	}
	return false
}

// AuthResponse is the body of a successful /login or /register call.
type AuthResponse struct {
	JWT  string `json:"jwt"`
	User *User  `json:"user"`
}

// Album represents album metadata from the catalog.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artist      string   `json:"artist"`
	Artists     []string `json:"artists,omitempty"`
	CoverImage  string   `json:"cover_image"`
	ReleaseDate string   `json:"release_date"`
	TotalTracks int      `json:"total_tracks"`
	URL         string   `json:"url"`

	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// ArtistName returns the display name for the album's artist(s).
func (a Album) ArtistName() string {
	if a.Artist != "" {
		return a.Artist
	}
	if len(a.Artists) > 0 {
		name := a.Artists[0]
		for _, extra := range a.Artists[1:] {
			name += ", " + extra
		}
		return name
	}
	return "Unknown Artist"
}

// Artist represents artist metadata from the catalog.
type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	Image  string   `json:"image"`

	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// ArtistDetails is the /artist_details response: the artist plus discography.
type ArtistDetails struct {
	Artist Artist  `json:"artist"`
	Albums []Album `json:"albums"`
}

// Song represents track metadata from the catalog.
type Song struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	CoverImage string `json:"cover_image"`
	URL        string `json:"url"`

	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// Video represents a music video entry from /videos.
type Video struct {
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
}

// Profile represents another user's public profile.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ProfileDetails is the /profile_details response.
type ProfileDetails struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Favorites []Favorite `json:"favorites"`
}

// Favorite represents a favorited entity (album, artist, song, or profile).
type Favorite struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Name       string `json:"name"`
	Image      string `json:"image"`
}

// RatingSummary is the backend-computed aggregate returned by /rate_entity.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// Comment represents a single comment on an entity.
//
// Likes, dislikes and the liked_by/disliked_by membership lists are
// backend-owned; like/dislike calls return the refreshed comment.
type Comment struct {
	ID         string   `json:"_id"`
	Username   string   `json:"username"`
	UserEmail  string   `json:"user_email"`
	Text       string   `json:"comment_text"`
	Timestamp  string   `json:"timestamp"`
	Likes      int      `json:"likes"`
	Dislikes   int      `json:"dislikes"`
	LikedBy    []string `json:"liked_by"`
	DislikedBy []string `json:"disliked_by"`
}

// IsLikedBy reports whether the given user ID appears in the liked_by list.
func (c Comment) IsLikedBy(userID string) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// IsDislikedBy reports whether the given user ID appears in the disliked_by list.
func (c Comment) IsDislikedBy(userID string) bool {
	for _, id := range c.DislikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Pagination describes a paginated comment listing.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// CommentPage is one page of a comment listing plus its pagination envelope.
type CommentPage struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

// SortCommentsByLikes returns a copy of comments ordered by like count, descending.
//
// The backend returns comments in insertion order; display order is a
// client concern.
func SortCommentsByLikes(comments []Comment) []Comment {
	sorted := make([]Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Likes > sorted[j].Likes
	})
	return sorted
}

// MergeComments combines an existing comment list with newly fetched ones.
//
// Comments sharing an ID are replaced by the incoming copy (like/dislike
// responses return the refreshed comment); new IDs are appended. The result
// is re-sorted by likes.
func MergeComments(existing, incoming []Comment) []Comment {
	merged := make([]Comment, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, c := range merged {
		index[c.ID] = i
	}

	for _, c := range incoming {
		if i, ok := index[c.ID]; ok {
			merged[i] = c
			continue
		}
		index[c.ID] = len(merged)
		merged = append(merged, c)
	}

	return SortCommentsByLikes(merged)
}

// RemoveComment returns comments without the entry matching the given ID.
func RemoveComment(comments []Comment, commentID string) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.ID != commentID {
			out = append(out, c)
		}
	}
	return out
}

// SearchResults holds one category of search hits; only the field matching
// the searched category is populated by the backend.
type SearchResults struct {
	Albums   []Album   `json:"albums,omitempty"`
	Tracks   []Song    `json:"tracks,omitempty"`
	Artists  []Artist  `json:"artists,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}
