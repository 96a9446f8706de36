// Package services implements the typed HTTP client for the SongBox backend.
//
// [SongBoxService] wraps the single fixed backend origin with one method per
// endpoint, grouped by concern:
//
//   - songbox.go : request plumbing, [APIError], auth endpoints (/login,
//     /register, /me)
//   - catalog.go : album/artist/song details, global charts, recently
//     listened, videos
//   - search.go  : category search endpoints
//   - social.go  : favorites, ratings, comments, follow graph, profiles
//
// All request/response shapes are backend-owned; this package decodes them
// into [models] types verbatim. Every method takes a context and issues the
// request through the injected http.Client, whose transport attaches the
// current bearer token (see the session package).
package services
