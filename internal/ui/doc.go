// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing SongBox:
//  1. [SignInView] : Email/password form shown when no session is active
//  2. [FeedView] : Browse the home feed (top albums, artists, recent songs)
//  3. [DetailView] : Album detail with ratings and comments
//  4. [LoadingView] : Monitor real-time progress while the feed loads
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the FeedEngine, providing non-blocking status reporting while sections load.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
