// Package repositories implements SQLite persistence for local client state.
//
// The backend owns all canonical data; these repositories only hold what the
// client needs between runs.
//
// Key Implementations:
//   - [TokenRepository] : session token persistence, the [session.TokenStore]
//     behind session restore across process restarts
//   - [FavoriteRepository] : local cache of the account's favorites so list
//     commands work offline, deduplicated on (entity_type, entity_id)
//
// Missing rows are not errors. A fresh database simply yields an empty token
// and an empty favorites list.
package repositories
