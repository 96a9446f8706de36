// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the TUI workflow using server-side rendering with
// HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. Sign In: Email/password form posting to the backend /login
//  2. Home Feed: Server-rendered sections with hx-get per chart
//  3. Detail: HTMX partial swap showing album/artist/song plus comments
//  4. Comments: hx-post for add/like/dislike with partial re-render
//  5. Profile: Favorites and follow graph views
//
// Core Components
//
//   - HTTP Server: net/http server with html/template rendering
//   - Service Integration: Uses same services.SongBoxService and tasks.FeedEngine as TUI
//   - Session Management: Cookie holding the backend JWT, mirrored through session.Manager
//   - Callback Handler: Reuses server.AuthCallbackHandler for the Spotify redirect
//
// Routes
//
//	GET  /                      → Home feed view (requires session)
//	GET  /signin                → Sign-in form
//	POST /signin                → Credential exchange via session.Manager
//	GET  /callback              → Deep-link token adoption
//	GET  /albums/{id}           → HTMX partial: album detail + comments
//	POST /albums/{id}/comments  → Post comment, return refreshed partial
//	GET  /profile/{id}          → Profile view with favorites
//
// # State Management
//
// Unlike the TUI's in-memory state, the web app persists state in:
//   - Session cookies: the backend JWT
//   - Favorites cache: repositories.FavoriteRepository shared with the CLI
//
// Not yet implemented; the CLI and TUI are the supported surfaces.
package web
