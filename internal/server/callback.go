package server

import (
	"fmt"
	"net/http"
	"sync"
)

// CallbackResult contains the outcome of a browser sign-in redirect.
type CallbackResult struct {
	Token string
	err   error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// AuthCallbackHandler handles the backend's post-login redirect.
// Implements the Handler interface for registration with a Router.
//
// The backend finishes the Spotify dance server-side and redirects the
// browser to this listener with the session token as a `token` query
// parameter. The handler never sees credentials or authorization codes.
type AuthCallbackHandler struct {
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewAuthCallbackHandler creates a handler ready to receive one redirect.
func NewAuthCallbackHandler() *AuthCallbackHandler {
	return &AuthCallbackHandler{
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthCallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the redirect request.
//
// Extracts the token parameter and sends it through the result channel.
func (h *AuthCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only handle callback once
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	token := r.URL.Query().Get("token")
	if token == "" {
		errParam := r.URL.Query().Get("error")
		err := fmt.Errorf("sign-in failed: no token in redirect (%s)", errParam)
		h.Send(CallbackResult{err: err})
		http.Error(w, "Sign-in failed", http.StatusBadRequest)
		return
	}

	h.Send(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Signed In</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ Signed In</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// Send sends the result through the channel (only once).
func (h *AuthCallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving the redirect outcome.
//
// Channel will receive exactly one result and then be closed.
func (h *AuthCallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}
