package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchAlbums Phase = iota
	FetchArtists
	FetchHistory
	FetchVideos
	FetchFavorites
	CacheFavorites
)

func (p Phase) String() string {
	switch p {
	case FetchAlbums:
		return "fetch_albums"
	case FetchArtists:
		return "fetch_artists"
	case FetchHistory:
		return "fetch_history"
	case FetchVideos:
		return "fetch_videos"
	case FetchFavorites:
		return "fetch_favorites"
	case CacheFavorites:
		return "cache_favorites"
	default:
		return ""
	}
}

func sectionUpdate(phase Phase, step, total int, message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: message,
	}
}

func sectionDoneUpdate(phase Phase, step, total, count int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d items)", step, total, name, count),
	}
}

func sectionFailedUpdate(phase Phase, step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
