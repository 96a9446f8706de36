package session

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/shared"
)

// Status enumerates the session lifecycle states.
type Status int

const (
	StatusRestoring Status = iota
	StatusUnauthenticated
	StatusAuthenticating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusRestoring:
		return "restoring"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return ""
	}
}

// Snapshot is an immutable view of the session state.
//
// Invariants: User is non-nil iff Status is StatusAuthenticated; Token is
// non-empty whenever Status is StatusAuthenticating or StatusAuthenticated.
type Snapshot struct {
	Status Status
	Token  string
	User   *models.User
}

// AuthBackend is the slice of the backend API the session depends on.
//
// Implemented by services.SongBoxService. Me must be issued through the
// shared client so it carries whatever token the Manager currently holds.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

// Manager is the process-wide owner of the authentication session.
//
// All state transitions replace the snapshot wholesale under the mutex;
// concurrent Restore and CompleteDeepLinkAuth calls converge on a terminal
// state without merging partial updates.
type Manager struct {
	mu      sync.RWMutex
	snap    Snapshot
	store   TokenStore
	backend AuthBackend
	logger  *log.Logger

	baseURL string
	openURL func(string) error
}

// Options configures a Manager.
type Options struct {
	Store   TokenStore
	Logger  *log.Logger
	BaseURL string              // backend origin, used to build the authorization redirect
	OpenURL func(string) error  // defaults to shared.OpenBrowser
}

// NewManager creates a session Manager in the Restoring state.
//
// The backend is bound separately via [Manager.SetBackend] because the
// backend client is built around the http.Client this Manager signs.
func NewManager(opts Options) *Manager {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	return &Manager{
		snap:    Snapshot{Status: StatusRestoring},
		store:   opts.Store,
		logger:  opts.Logger,
		baseURL: opts.BaseURL,
		openURL: opts.OpenURL,
	}
}

// SetBackend binds the backend API used for credential and token validation
// calls. Must be called once during wiring, before any session operation.
func (m *Manager) SetBackend(b AuthBackend) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backend = b
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// CurrentUser returns the authenticated user, or nil.
func (m *Manager) CurrentUser() *models.User {
	return m.Snapshot().User
}

// CurrentToken returns the active bearer token, or the empty string.
//
// Resolved per request by [Transport] so outbound calls always carry the
// latest token.
func (m *Manager) CurrentToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.Token
}

func (m *Manager) replace(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
}

// Restore loads the persisted token and validates it against the backend.
//
// Invoked once at startup. Resolves to Authenticated on success and
// Unauthenticated otherwise: a missing token, a rejected token, and a
// network failure during validation all end Unauthenticated (the last two
// also clear the persisted token).
func (m *Manager) Restore(ctx context.Context) Snapshot {
	token, err := m.store.Load()
	if err != nil {
		m.logger.Warn("failed to read persisted token", "error", err)
		token = ""
	}

	if token == "" {
		m.logger.Debug("no persisted token, starting unauthenticated")
		m.replace(Snapshot{Status: StatusUnauthenticated})
		return m.Snapshot()
	}

	return m.validateToken(ctx, token)
}

// validateToken installs a candidate token, confirms it with /me, and
// resolves the session to a terminal state.
func (m *Manager) validateToken(ctx context.Context, token string) Snapshot {
	m.replace(Snapshot{Status: StatusAuthenticating, Token: token})

	user, err := m.backend.Me(ctx)
	if err != nil {
		m.logger.Warn("token validation failed, logging out", "error", err)
		m.Logout()
		return m.Snapshot()
	}

	m.replace(Snapshot{Status: StatusAuthenticated, Token: token, User: user})
	m.logger.Info("session restored", "username", user.Username)
	return m.Snapshot()
}

// Login exchanges credentials for a token and user record.
//
// On success the token is persisted, the session becomes Authenticated, and
// the third-party authorization redirect is opened in the browser; the
// session stays Authenticated regardless of that redirect's outcome. On
// failure the backend's message is returned and the session stays
// Unauthenticated.
func (m *Manager) Login(ctx context.Context, email, password string) (Snapshot, error) {
	resp, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return m.resolveAuthFailure(err)
	}

	return m.install(resp)
}

// Register creates an account; same contract as Login.
func (m *Manager) Register(ctx context.Context, username, email, password string) (Snapshot, error) {
	resp, err := m.backend.Register(ctx, username, email, password)
	if err != nil {
		return m.resolveAuthFailure(err)
	}

	return m.install(resp)
}

// resolveAuthFailure settles the session after a rejected credential
// exchange. An existing Authenticated session is left intact, with its
// persisted token still valid; anything else settles Unauthenticated.
func (m *Manager) resolveAuthFailure(err error) (Snapshot, error) {
	m.mu.Lock()
	if m.snap.Status != StatusAuthenticated {
		m.snap = Snapshot{Status: StatusUnauthenticated}
	}
	m.mu.Unlock()
	return m.Snapshot(), err
}

// install persists and activates a freshly issued token + user pair, then
// kicks off the out-of-process authorization step.
func (m *Manager) install(resp *models.AuthResponse) (Snapshot, error) {
	if resp.JWT == "" || resp.User == nil {
		return m.resolveAuthFailure(fmt.Errorf("%w: backend returned no token or user", shared.ErrAuthFailed))
	}

	if err := m.store.Save(resp.JWT); err != nil {
		m.logger.Warn("failed to persist token", "error", err)
	}

	m.replace(Snapshot{Status: StatusAuthenticated, Token: resp.JWT, User: resp.User})

	authorizeURL := m.AuthorizeURL(resp.User.Email)
	if err := m.openURL(authorizeURL); err != nil {
		// Authorization completes out of process; the session is already valid.
		m.logger.Warn("failed to open authorization URL", "url", authorizeURL, "error", err)
	}

	return m.Snapshot(), nil
}

// AuthorizeURL returns the backend's third-party authorization URL for the
// given account. The backend reports completion via the deep-link redirect.
func (m *Manager) AuthorizeURL(email string) string {
	return fmt.Sprintf("%s/auth/spotify?state=%s", m.baseURL, url.QueryEscape(email))
}

// Logout clears the in-memory session and the persisted token.
//
// Idempotent: logging out while unauthenticated leaves a clean state.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear persisted token", "error", err)
	}
	m.replace(Snapshot{Status: StatusUnauthenticated})
}

// CompleteDeepLinkAuth handles the external redirect that carries a freshly
// issued token in its "token" query parameter.
//
// A URL without a token parameter is ignored (no state change). Otherwise
// the token is persisted, installed and validated exactly like Restore.
func (m *Manager) CompleteDeepLinkAuth(ctx context.Context, rawURL string) (Snapshot, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return m.Snapshot(), fmt.Errorf("%w: malformed redirect URL: %v", shared.ErrInvalidInput, err)
	}

	token := u.Query().Get("token")
	if token == "" {
		m.logger.Debug("redirect without token parameter, ignoring", "url", rawURL)
		return m.Snapshot(), nil
	}

	return m.AdoptToken(ctx, token)
}

// AdoptToken persists and validates an externally obtained token, such as one
// carried by a deep-link redirect or lifted from a browser session.
func (m *Manager) AdoptToken(ctx context.Context, token string) (Snapshot, error) {
	if token == "" {
		return m.Snapshot(), fmt.Errorf("%w: empty token", shared.ErrInvalidInput)
	}

	if err := m.store.Save(token); err != nil {
		m.logger.Warn("failed to persist token", "error", err)
	}

	snap := m.validateToken(ctx, token)
	if snap.Status != StatusAuthenticated {
		return snap, fmt.Errorf("%w: token rejected by backend", shared.ErrTokenInvalid)
	}
	return snap, nil
}

// ReplaceUser installs a refreshed user record after a backend mutation
// (username change, follow/unfollow). No-op when unauthenticated.
func (m *Manager) ReplaceUser(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap.Status != StatusAuthenticated || user == nil {
		return
	}
	m.snap = Snapshot{Status: StatusAuthenticated, Token: m.snap.Token, User: user}
}
