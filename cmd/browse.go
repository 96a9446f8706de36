package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/songbox/internal/formatter"
	"github.com/desertthunder/songbox/internal/services"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Home assembles and prints the home feed.
func (r *Runner) Home(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	r.logger.Info("assembling home feed")

	result, err := r.engine.Home(ctx, nil)
	if err != nil {
		return err
	}

	for _, sectionErr := range result.Errors {
		r.logger.Warn("home feed section failed", "section", sectionErr.Section, "error", sectionErr.Err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	view := &formatter.HomeView{
		TopAlbums:        result.TopAlbums,
		TopArtists:       result.TopArtists,
		RecentlyListened: result.RecentlyListened,
		Videos:           result.Videos,
	}
	text, err := formatter.HomeToText(view)
	if err != nil {
		return err
	}
	return r.writePlain("%s", string(text))
}

// ShowAlbum prints an album with its rating aggregate.
func (r *Runner) ShowAlbum(ctx context.Context, cmd *cli.Command) error {
	albumID := cmd.StringArg("id")
	if albumID == "" {
		return fmt.Errorf("%w: an album ID is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	album, err := r.api.AlbumDetails(ctx, albumID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", string(formatter.AlbumToText(album)))
}

// ShowArtist prints an artist with discography.
func (r *Runner) ShowArtist(ctx context.Context, cmd *cli.Command) error {
	artistID := cmd.StringArg("id")
	if artistID == "" {
		return fmt.Errorf("%w: an artist ID is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	details, err := r.api.ArtistDetails(ctx, artistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(details, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", string(formatter.ArtistToMarkdown(details)))
}

// ShowSong prints a song with its rating aggregate.
func (r *Runner) ShowSong(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.StringArg("id")
	if songID == "" {
		return fmt.Errorf("%w: a song ID is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	song, err := r.api.SongDetails(ctx, songID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, cmd.Bool("pretty"))
	}

	r.writePlain("Song: %s\n", song.Name)
	r.writePlain("Artist: %s\n", song.Artist)
	if song.Album != "" {
		r.writePlain("Album: %s\n", song.Album)
	}
	if song.RatingCount > 0 {
		r.writePlain("Rating: %.1f (%d)\n", song.AverageRating, song.RatingCount)
	}
	if song.URL != "" {
		r.writePlain("URL: %s\n", song.URL)
	}
	return nil
}

// Search queries one catalog category.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: a search query is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	category := services.SearchCategory(cmd.String("type"))
	limit := cmd.Int("limit")

	r.logger.Info("searching", "category", string(category), "query", query)

	results, err := r.api.Search(ctx, category, query, int(limit))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, true)
	}

	return r.writePlain("%s", string(formatter.SearchResultsToText(results)))
}
