package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/songbox/internal/formatter"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the favorites list, from the backend or the local cache.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	cached := cmd.Bool("cached")
	useJSON := cmd.Bool("json")

	var favorites []models.Favorite
	var err error

	if cached {
		favorites, err = r.engine.CachedFavorites()
		if err != nil {
			return err
		}
	} else {
		if err := r.requireAuth(ctx); err != nil {
			return err
		}

		favorites, err = r.engine.SyncFavorites(ctx, nil)
		if err != nil {
			// The backend is unreachable; fall back to the cache when present.
			if r.favorites == nil {
				return err
			}
			r.logger.Warn("falling back to cached favorites", "error", err)
			if favorites, err = r.engine.CachedFavorites(); err != nil {
				return err
			}
		}
	}

	if useJSON {
		return r.writeJSON(favorites, true)
	}

	return r.writePlain("%s", string(formatter.FavoritesToText(favorites)))
}

// FavoritesAdd marks an entity as a favorite on the backend and in the cache.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	fav := models.Favorite{
		EntityType: cmd.String("type"),
		EntityID:   cmd.String("id"),
		Name:       cmd.String("name"),
		Image:      cmd.String("image"),
	}

	if err := r.api.AddFavorite(ctx, fav); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if r.favorites != nil {
		if err := r.favorites.Upsert(fav); err != nil {
			r.logger.Warn("failed to cache favorite", "error", err)
		}
	}

	return r.writePlain("✓ Added %s %s to favorites\n", fav.EntityType, fav.EntityID)
}

// FavoritesRemove unmarks a favorite on the backend and in the cache.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	entityType := cmd.String("type")
	entityID := cmd.String("id")

	if err := r.api.RemoveFavorite(ctx, entityType, entityID); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if r.favorites != nil {
		if err := r.favorites.Remove(entityType, entityID); err != nil {
			r.logger.Warn("failed to evict cached favorite", "error", err)
		}
	}

	return r.writePlain("✓ Removed %s %s from favorites\n", entityType, entityID)
}

// FavoritesExport writes the favorites list to a CSV file.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	favorites, err := r.engine.SyncFavorites(ctx, nil)
	if err != nil {
		return err
	}

	result, err := formatter.WriteFavoritesCSV(favorites, cmd.String("output"))
	if err != nil {
		return err
	}

	return r.writePlain("✓ Exported %d favorites to %s\n", len(favorites), result.File)
}

// Rate submits a star rating and prints the refreshed aggregate.
func (r *Runner) Rate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	entityType := cmd.String("type")
	entityID := cmd.String("id")
	stars := int(cmd.Int("stars"))

	summary, err := r.api.RateEntity(ctx, entityType, entityID, stars)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("✓ Rated %s %s: %d stars\n", entityType, entityID, stars)
	r.writePlain("Average: %.1f (%d ratings)\n", summary.AverageRating, summary.RatingCount)
	return nil
}

// CommentsList prints one page of an entity's comments, most liked first.
func (r *Runner) CommentsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	page, err := r.api.Comments(ctx, cmd.String("type"), cmd.String("id"), int(cmd.Int("page")), int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	return r.writePlain("%s", string(formatter.CommentsToText(page)))
}

// CommentsAdd posts a comment on an entity.
func (r *Runner) CommentsAdd(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	if text == "" {
		return fmt.Errorf("%w: comment text is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	comment, err := r.api.AddComment(ctx, cmd.String("type"), cmd.String("id"), text)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Comment posted (%s)\n", comment.ID)
}

// CommentsDelete removes one of the account's own comments.
func (r *Runner) CommentsDelete(ctx context.Context, cmd *cli.Command) error {
	commentID := cmd.StringArg("comment-id")
	if commentID == "" {
		return fmt.Errorf("%w: a comment ID is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	if err := r.api.DeleteComment(ctx, cmd.String("type"), cmd.String("id"), commentID); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Comment deleted\n")
}

// CommentsLike toggles a like on a comment.
func (r *Runner) CommentsLike(ctx context.Context, cmd *cli.Command) error {
	return r.react(ctx, cmd, "like")
}

// CommentsDislike toggles a dislike on a comment.
func (r *Runner) CommentsDislike(ctx context.Context, cmd *cli.Command) error {
	return r.react(ctx, cmd, "dislike")
}

func (r *Runner) react(ctx context.Context, cmd *cli.Command, reaction string) error {
	commentID := cmd.StringArg("comment-id")
	if commentID == "" {
		return fmt.Errorf("%w: a comment ID is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	var comment *models.Comment
	var err error

	if reaction == "like" {
		comment, err = r.api.LikeComment(ctx, cmd.String("type"), cmd.String("id"), commentID)
	} else {
		comment, err = r.api.DislikeComment(ctx, cmd.String("type"), cmd.String("id"), commentID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ %s by %s now at +%d/-%d\n", comment.ID, comment.Username, comment.Likes, comment.Dislikes)
}
