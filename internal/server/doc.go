// Package server provides HTTP routing and the auth callback listener.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Auth Callback Handler
//
// [AuthCallbackHandler] receives the redirect the backend issues once the
// user finishes signing in with Spotify in the browser. The redirect carries
// the session token as a query parameter; the handler extracts it and sends
// it through a channel.
//
// It only processes one callback, so a stale or replayed redirect cannot
// overwrite an established session.
//
// # Current Usage
//
// When the user runs `songbox auth wait`, a temporary HTTP server starts on
// the configured localhost address, handles the callback, and shuts down
// after receiving the token.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
