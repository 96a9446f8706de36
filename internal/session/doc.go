// Package session owns the authentication lifecycle for the SongBox client.
//
// The [Manager] is the single source of truth for "who is logged in": it
// holds the bearer token and current [models.User] as an atomically-replaced
// [Snapshot], persists the token through a [TokenStore], and completes the
// out-of-process authorization redirect via [Manager.CompleteDeepLinkAuth].
//
// Every other part of the application reaches the backend through an
// [*net/http.Client] whose [Transport] resolves the token from the Manager at
// send time, so requests always carry the latest credential: a token set
// after the client was constructed is attached to the very next request.
//
// State machine:
//
//	Restoring → {Authenticated, Unauthenticated}
//	Unauthenticated → Authenticating → {Authenticated, Unauthenticated}
//	Authenticated → Unauthenticated (logout or validation failure)
//
// Every operation resolves to a terminal Authenticated/Unauthenticated state;
// the session is never left in Restoring or Authenticating.
package session
