// Package tasks orchestrates multi-endpoint backend operations with real-time progress reporting.
//
// # Core Operations
//
// The [FeedEngine] provides two operations:
//
//  1. [FeedEngine.Home] : Assemble the home feed
//     - Fetches the global album chart, global artist chart, and the
//       account's listening history concurrently
//     - Fetches featured videos best-effort
//     - Returns whatever sections loaded; per-section failures are
//       collected, not fatal
//
//  2. [FeedEngine.SyncFavorites] : Refresh the local favorites cache
//     - Fetches the account's favorites from the backend
//     - Replaces the cached set so stale rows disappear
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
// The [ProgressUpdate] struct contains phase, step counters, and messages for UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [FeedEngine] depends on:
//   - [CatalogAPI] : the backend catalog endpoints (services.SongBoxService)
//   - [SocialAPI] : the backend favorites endpoints, optional
//   - [FavoriteCache] : local persistence (repositories.FavoriteRepository), optional
package tasks
