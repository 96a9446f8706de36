// package tasks assembles multi-endpoint views of the SongBox backend.
//
// The core type is FeedEngine, which fans out catalog requests for the home
// feed and keeps the local favorites cache in sync with the backend.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

// CatalogAPI defines the catalog endpoints the home feed draws from.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type CatalogAPI interface {
	TopAlbums(ctx context.Context) ([]models.Album, error)
	TopArtists(ctx context.Context) ([]models.Artist, error)
	RecentlyListened(ctx context.Context) ([]models.Song, error)
	Videos(ctx context.Context) ([]models.Video, error)
}

// SocialAPI defines the favorites endpoint used for cache sync.
type SocialAPI interface {
	Favorites(ctx context.Context) ([]models.Favorite, error)
}

// FavoriteCache defines the local persistence used by SyncFavorites.
// Implemented by repositories.FavoriteRepository.
type FavoriteCache interface {
	Replace(favorites []models.Favorite) error
	List() ([]models.Favorite, error)
}

// SectionError records a home feed section that failed to load.
type SectionError struct {
	Section string
	Err     error
}

func (e SectionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Section, e.Err)
}

// HomeResult contains every section of the home feed that loaded.
//
// Sections that failed are listed in Errors with their section name; the
// corresponding slices stay nil. Videos failing never produces an entry,
// that section is decorative.
type HomeResult struct {
	TopAlbums        []models.Album
	TopArtists       []models.Artist
	RecentlyListened []models.Song
	Videos           []models.Video
	Errors           []SectionError
}

// FeedEngine assembles backend data into client views.
type FeedEngine struct {
	catalog CatalogAPI
	social  SocialAPI
	cache   FavoriteCache
}

// NewFeedEngine creates a new FeedEngine with the provided dependencies.
// social and cache may be nil when only Home is needed.
func NewFeedEngine(catalog CatalogAPI, social SocialAPI, cache FavoriteCache) *FeedEngine {
	return &FeedEngine{
		catalog: catalog,
		social:  social,
		cache:   cache,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *FeedEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Home fetches all home feed sections concurrently.
//
// The three primary sections (albums, artists, history) record failures in
// the result; the operation only returns an error when every primary section
// failed. Videos are fetched best-effort and never fail the feed.
func (e *FeedEngine) Home(ctx context.Context, progress chan<- ProgressUpdate) (*HomeResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	result := &HomeResult{}
	const total = 4

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	fail := func(section string, phase Phase, step int, err error) {
		mu.Lock()
		result.Errors = append(result.Errors, SectionError{Section: section, Err: err})
		mu.Unlock()
		e.sendProgress(progress, sectionFailedUpdate(phase, step, total, section, err))
	}

	wg.Add(4)

	go func() {
		defer wg.Done()
		e.sendProgress(progress, sectionUpdate(FetchAlbums, 1, total, "Fetching top albums..."))
		albums, err := e.catalog.TopAlbums(ctx)
		if err != nil {
			fail("top albums", FetchAlbums, 1, err)
			return
		}
		mu.Lock()
		result.TopAlbums = albums
		mu.Unlock()
		e.sendProgress(progress, sectionDoneUpdate(FetchAlbums, 1, total, len(albums), "top albums"))
	}()

	go func() {
		defer wg.Done()
		e.sendProgress(progress, sectionUpdate(FetchArtists, 2, total, "Fetching top artists..."))
		artists, err := e.catalog.TopArtists(ctx)
		if err != nil {
			fail("top artists", FetchArtists, 2, err)
			return
		}
		mu.Lock()
		result.TopArtists = artists
		mu.Unlock()
		e.sendProgress(progress, sectionDoneUpdate(FetchArtists, 2, total, len(artists), "top artists"))
	}()

	go func() {
		defer wg.Done()
		e.sendProgress(progress, sectionUpdate(FetchHistory, 3, total, "Fetching recently listened..."))
		songs, err := e.catalog.RecentlyListened(ctx)
		if err != nil {
			fail("recently listened", FetchHistory, 3, err)
			return
		}
		mu.Lock()
		result.RecentlyListened = songs
		mu.Unlock()
		e.sendProgress(progress, sectionDoneUpdate(FetchHistory, 3, total, len(songs), "recently listened"))
	}()

	go func() {
		defer wg.Done()
		e.sendProgress(progress, sectionUpdate(FetchVideos, 4, total, "Fetching videos..."))
		videos, err := e.catalog.Videos(ctx)
		if err != nil {
			// best-effort section
			e.sendProgress(progress, sectionFailedUpdate(FetchVideos, 4, total, "videos", err))
			return
		}
		mu.Lock()
		result.Videos = videos
		mu.Unlock()
		e.sendProgress(progress, sectionDoneUpdate(FetchVideos, 4, total, len(videos), "videos"))
	}()

	wg.Wait()

	if len(result.Errors) == 3 {
		return result, fmt.Errorf("%w: all home feed sections failed", shared.ErrAPIRequest)
	}

	return result, nil
}

// SyncFavorites fetches the account's favorites and replaces the local cache.
// Returns the fresh set.
func (e *FeedEngine) SyncFavorites(ctx context.Context, progress chan<- ProgressUpdate) ([]models.Favorite, error) {
	if e.social == nil {
		return nil, fmt.Errorf("%w: social service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, sectionUpdate(FetchFavorites, 1, 2, "Fetching favorites..."))

	favorites, err := e.social.Favorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch favorites: %v", shared.ErrAPIRequest, err)
	}

	e.sendProgress(progress, sectionDoneUpdate(FetchFavorites, 1, 2, len(favorites), "favorites"))

	if e.cache != nil {
		e.sendProgress(progress, sectionUpdate(CacheFavorites, 2, 2, "Caching favorites..."))
		if err := e.cache.Replace(favorites); err != nil {
			return favorites, fmt.Errorf("failed to cache favorites: %w", err)
		}
	}

	return favorites, nil
}

// CachedFavorites returns the local favorites cache without touching the network.
func (e *FeedEngine) CachedFavorites() ([]models.Favorite, error) {
	if e.cache == nil {
		return nil, fmt.Errorf("%w: favorites cache not initialized", shared.ErrServiceUnavailable)
	}

	return e.cache.List()
}
