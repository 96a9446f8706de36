// Social endpoints: favorites, ratings, comments, follow graph, profiles.
package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/desertthunder/songbox/internal/models"
)

// Favorites retrieves the signed-in account's favorites.
func (s *SongBoxService) Favorites(ctx context.Context) ([]models.Favorite, error) {
	var resp struct {
		Favorites []models.Favorite `json:"favorites"`
	}
	if err := s.get(ctx, "/get_favorites", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Favorites, nil
}

// AddFavorite marks an entity as a favorite.
func (s *SongBoxService) AddFavorite(ctx context.Context, fav models.Favorite) error {
	return s.post(ctx, "/add_favorite", fav, nil)
}

// RemoveFavorite unmarks a favorite.
func (s *SongBoxService) RemoveFavorite(ctx context.Context, entityType, entityID string) error {
	payload := map[string]string{"entityType": entityType, "entityId": entityID}
	return s.post(ctx, "/remove_favorite", payload, nil)
}

// RateEntity submits a 1-5 star rating and returns the refreshed aggregate.
func (s *SongBoxService) RateEntity(ctx context.Context, entityType, entityID string, rating int) (*models.RatingSummary, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	payload := map[string]any{
		"entityType": entityType,
		"entityId":   entityID,
		"rating":     rating,
	}

	var summary models.RatingSummary
	if err := s.post(ctx, "/rate_entity", payload, &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// UserRating retrieves the signed-in account's own rating for an entity.
//
// Returns 0 when the account has not rated the entity.
func (s *SongBoxService) UserRating(ctx context.Context, entityType, entityID string) (int, error) {
	query := url.Values{
		"entityType": {entityType},
		"entityId":   {entityID},
	}

	var resp struct {
		Rating int `json:"rating"`
	}
	if err := s.get(ctx, "/get_user_rating", query, &resp); err != nil {
		return 0, err
	}

	return resp.Rating, nil
}

// commentsPath builds the nested comment route for an entity.
func commentsPath(entityType, entityID string) string {
	return fmt.Sprintf("/%s/%s/comments", url.PathEscape(entityType), url.PathEscape(entityID))
}

// Comments retrieves one page of an entity's comments.
func (s *SongBoxService) Comments(ctx context.Context, entityType, entityID string, page, limit int) (*models.CommentPage, error) {
	if entityID == "" {
		return nil, fmt.Errorf("no entity ID provided")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}

	var pageResp models.CommentPage
	if err := s.get(ctx, commentsPath(entityType, entityID), query, &pageResp); err != nil {
		return nil, err
	}

	return &pageResp, nil
}

// AddComment posts a comment on an entity and returns the created record.
func (s *SongBoxService) AddComment(ctx context.Context, entityType, entityID, text string) (*models.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("empty comment text")
	}

	payload := map[string]string{"comment_text": text}

	var resp struct {
		Comment *models.Comment `json:"comment"`
	}
	if err := s.post(ctx, commentsPath(entityType, entityID), payload, &resp); err != nil {
		return nil, err
	}
	if resp.Comment == nil {
		return nil, fmt.Errorf("backend returned no comment record")
	}

	return resp.Comment, nil
}

// DeleteComment removes one of the account's own comments.
func (s *SongBoxService) DeleteComment(ctx context.Context, entityType, entityID, commentID string) error {
	path := fmt.Sprintf("%s/%s", commentsPath(entityType, entityID), url.PathEscape(commentID))
	return s.del(ctx, path)
}

// react posts a like/dislike and returns the refreshed comment.
func (s *SongBoxService) react(ctx context.Context, entityType, entityID, commentID, reaction string) (*models.Comment, error) {
	path := fmt.Sprintf("%s/%s/%s", commentsPath(entityType, entityID), url.PathEscape(commentID), reaction)

	var resp struct {
		Comment *models.Comment `json:"comment"`
	}
	if err := s.post(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Comment == nil {
		return nil, fmt.Errorf("backend returned no comment record")
	}

	return resp.Comment, nil
}

// LikeComment toggles the account's like on a comment.
func (s *SongBoxService) LikeComment(ctx context.Context, entityType, entityID, commentID string) (*models.Comment, error) {
	return s.react(ctx, entityType, entityID, commentID, "like")
}

// DislikeComment toggles the account's dislike on a comment.
func (s *SongBoxService) DislikeComment(ctx context.Context, entityType, entityID, commentID string) (*models.Comment, error) {
	return s.react(ctx, entityType, entityID, commentID, "dislike")
}

// FollowUser follows a profile and returns the backend's confirmation message.
func (s *SongBoxService) FollowUser(ctx context.Context, profileID string) (string, error) {
	return s.followOp(ctx, "/follow_user", profileID)
}

// UnfollowUser unfollows a profile and returns the backend's confirmation message.
func (s *SongBoxService) UnfollowUser(ctx context.Context, profileID string) (string, error) {
	return s.followOp(ctx, "/unfollow_user", profileID)
}

func (s *SongBoxService) followOp(ctx context.Context, path, profileID string) (string, error) {
	if profileID == "" {
		return "", fmt.Errorf("no profile ID provided")
	}

	payload := map[string]string{"profile_id": profileID}

	var resp struct {
		Message string `json:"message"`
	}
	if err := s.post(ctx, path, payload, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

// FollowingDetails resolves followed-user IDs to profile records.
func (s *SongBoxService) FollowingDetails(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	payload := map[string][]string{"ids": ids}

	var resp struct {
		Users []models.Profile `json:"users"`
	}
	if err := s.post(ctx, "/get_following_details", payload, &resp); err != nil {
		return nil, err
	}

	return resp.Users, nil
}

// ProfileDetails retrieves another user's public profile with favorites.
func (s *SongBoxService) ProfileDetails(ctx context.Context, profileID string) (*models.ProfileDetails, error) {
	if profileID == "" {
		return nil, fmt.Errorf("no profile ID provided")
	}

	query := url.Values{"profile_id": {profileID}}

	var details models.ProfileDetails
	if err := s.get(ctx, "/profile_details", query, &details); err != nil {
		return nil, err
	}

	return &details, nil
}

// UpdateUsername renames the account and returns the accepted username.
func (s *SongBoxService) UpdateUsername(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("empty username")
	}

	payload := map[string]string{"username": username}

	var resp struct {
		Username string `json:"username"`
	}
	if err := s.post(ctx, "/update_username", payload, &resp); err != nil {
		return "", err
	}

	return resp.Username, nil
}
