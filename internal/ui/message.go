package ui

import (
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/session"
	"github.com/desertthunder/songbox/internal/tasks"
)

// signedInMsg carries the session snapshot produced by a sign-in attempt.
type signedInMsg struct {
	snap session.Snapshot
	err  error
}

// restoredMsg carries the snapshot produced by restoring a persisted session.
type restoredMsg struct {
	snap session.Snapshot
}

// feedFetchedMsg carries the assembled home feed.
type feedFetchedMsg struct {
	result *tasks.HomeResult
	err    error
}

// progressUpdateMsg relays FeedEngine progress to the loading view.
type progressUpdateMsg tasks.ProgressUpdate

// detailFetchedMsg carries an album detail plus its first comment page.
type detailFetchedMsg struct {
	album    *models.Album
	comments *models.CommentPage
	err      error
}
