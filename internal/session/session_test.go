package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/songbox/internal/services"
	"github.com/desertthunder/songbox/internal/session"
	"github.com/desertthunder/songbox/internal/shared"
)

// opener records authorization URLs instead of launching a browser.
type opener struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (o *opener) open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return o.err
}

func (o *opener) opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.urls
}

// stack wires a Manager, Transport and backend client against a test server,
// in the same order the CLI does.
func stack(t *testing.T, handler http.Handler, store session.TokenStore) (*session.Manager, *services.SongBoxService, *opener) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	browser := &opener{}
	mgr := session.NewManager(session.Options{
		Store:   store,
		Logger:  shared.NewLogger(io.Discard),
		BaseURL: srv.URL,
		OpenURL: browser.open,
	})

	client := &http.Client{Transport: session.NewTransport(mgr, 0)}
	api := services.NewSongBoxService(srv.URL, client)
	mgr.SetBackend(api)

	return mgr, api, browser
}

func writeUser(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"user": map[string]any{"id": 1, "email": "sam@example.com", "username": "sam"},
	})
}

func TestRestore(t *testing.T) {
	t.Run("without persisted token resolves unauthenticated", func(t *testing.T) {
		var hits int
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusUnauthorized)
		})

		mgr, _, _ := stack(t, handler, session.NewMemoryStore())

		snap := mgr.Restore(context.Background())
		if snap.Status != session.StatusUnauthenticated {
			t.Errorf("expected unauthenticated, got %s", snap.Status)
		}
		if hits != 0 {
			t.Errorf("expected no backend calls without a token, got %d", hits)
		}
	})

	t.Run("with valid token resolves authenticated", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
				t.Errorf("expected bearer tok-abc, got %q", got)
			}
			writeUser(w)
		})

		store := session.NewMemoryStore()
		store.Save("tok-abc")
		mgr, _, _ := stack(t, handler, store)

		snap := mgr.Restore(context.Background())
		if snap.Status != session.StatusAuthenticated {
			t.Fatalf("expected authenticated, got %s", snap.Status)
		}
		if snap.User == nil || snap.User.Username != "sam" {
			t.Errorf("expected user sam, got %+v", snap.User)
		}
	})

	t.Run("with rejected token clears the store", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid token"})
		})

		store := session.NewMemoryStore()
		store.Save("xyz789")
		mgr, _, _ := stack(t, handler, store)

		snap := mgr.Restore(context.Background())
		if snap.Status != session.StatusUnauthenticated {
			t.Errorf("expected unauthenticated, got %s", snap.Status)
		}
		if tok, _ := store.Load(); tok != "" {
			t.Errorf("expected stored token to be cleared, got %q", tok)
		}
	})

	t.Run("network failure during validation resolves unauthenticated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		store := session.NewMemoryStore()
		store.Save("tok-abc")

		mgr := session.NewManager(session.Options{
			Store:   store,
			Logger:  shared.NewLogger(io.Discard),
			BaseURL: srv.URL,
			OpenURL: func(string) error { return nil },
		})
		client := &http.Client{Transport: session.NewTransport(mgr, 0)}
		mgr.SetBackend(services.NewSongBoxService(srv.URL, client))

		snap := mgr.Restore(context.Background())
		if snap.Status != session.StatusUnauthenticated {
			t.Errorf("expected unauthenticated after network failure, got %s", snap.Status)
		}
	})
}

func TestLogin(t *testing.T) {
	authHandler := func(t *testing.T) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/login":
				var creds map[string]string
				json.NewDecoder(r.Body).Decode(&creds)
				if creds["email"] != "sam@example.com" || creds["password"] != "abc123" {
					w.WriteHeader(http.StatusUnauthorized)
					json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
					return
				}
				json.NewEncoder(w).Encode(map[string]any{
					"jwt":  "tok-123",
					"user": map[string]any{"id": 1, "email": "sam@example.com", "username": "sam"},
				})
			case "/me":
				if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
					t.Errorf("expected bearer tok-123 on /me, got %q", got)
				}
				writeUser(w)
			default:
				http.NotFound(w, r)
			}
		})
	}

	t.Run("success persists token and opens authorization", func(t *testing.T) {
		store := session.NewMemoryStore()
		mgr, api, browser := stack(t, authHandler(t), store)

		snap, err := mgr.Login(context.Background(), "sam@example.com", "abc123")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if snap.Status != session.StatusAuthenticated {
			t.Fatalf("expected authenticated, got %s", snap.Status)
		}
		if tok, _ := store.Load(); tok != "tok-123" {
			t.Errorf("expected persisted token tok-123, got %q", tok)
		}

		urls := browser.opened()
		if len(urls) != 1 || !strings.HasSuffix(urls[0], "/auth/spotify?state=sam%40example.com") {
			t.Errorf("expected authorization redirect for sam@example.com, got %v", urls)
		}

		// The backend client was built before login; its next request must
		// carry the fresh token.
		if _, err := api.Me(context.Background()); err != nil {
			t.Errorf("post-login request failed: %v", err)
		}
	})

	t.Run("failure surfaces the backend message verbatim", func(t *testing.T) {
		store := session.NewMemoryStore()
		mgr, _, browser := stack(t, authHandler(t), store)

		snap, err := mgr.Login(context.Background(), "sam@example.com", "wrong")
		if err == nil {
			t.Fatal("expected login error")
		}
		if err.Error() != "Invalid credentials" {
			t.Errorf("expected backend message verbatim, got %q", err.Error())
		}
		if snap.Status != session.StatusUnauthenticated {
			t.Errorf("expected unauthenticated after failure, got %s", snap.Status)
		}
		if tok, _ := store.Load(); tok != "" {
			t.Errorf("expected no persisted token, got %q", tok)
		}
		if len(browser.opened()) != 0 {
			t.Error("expected no authorization redirect after failed login")
		}
	})

	t.Run("failed attempt leaves an active session intact", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/login" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
				return
			}
			writeUser(w)
		})

		store := session.NewMemoryStore()
		store.Save("tok-abc")
		mgr, _, _ := stack(t, handler, store)

		if snap := mgr.Restore(context.Background()); snap.Status != session.StatusAuthenticated {
			t.Fatalf("expected authenticated before re-login, got %s", snap.Status)
		}

		snap, err := mgr.Login(context.Background(), "sam@example.com", "wrong")
		if err == nil {
			t.Fatal("expected login error")
		}
		if snap.Status != session.StatusAuthenticated || snap.Token != "tok-abc" {
			t.Errorf("expected the existing session to survive, got %+v", snap)
		}
		if tok, _ := store.Load(); tok != "tok-abc" {
			t.Errorf("expected persisted token to match the live session, got %q", tok)
		}
	})

	t.Run("browser failure does not fail the login", func(t *testing.T) {
		mgr, _, browser := stack(t, authHandler(t), session.NewMemoryStore())
		browser.err = errors.New("no display")

		snap, err := mgr.Login(context.Background(), "sam@example.com", "abc123")
		if err != nil {
			t.Fatalf("login should succeed despite browser failure: %v", err)
		}
		if snap.Status != session.StatusAuthenticated {
			t.Errorf("expected authenticated, got %s", snap.Status)
		}
	})
}

func TestLogout(t *testing.T) {
	store := session.NewMemoryStore()
	store.Save("tok-abc")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { writeUser(w) })
	mgr, _, _ := stack(t, handler, store)

	mgr.Restore(context.Background())
	if mgr.Snapshot().Status != session.StatusAuthenticated {
		t.Fatal("expected authenticated session before logout")
	}

	mgr.Logout()
	if mgr.Snapshot().Status != session.StatusUnauthenticated {
		t.Error("expected unauthenticated after logout")
	}
	if tok, _ := store.Load(); tok != "" {
		t.Errorf("expected cleared store, got %q", tok)
	}

	// Logging out again leaves the same clean state.
	mgr.Logout()
	if mgr.Snapshot().Status != session.StatusUnauthenticated {
		t.Error("expected logout to be idempotent")
	}
}

func TestCompleteDeepLinkAuth(t *testing.T) {
	t.Run("url without token is ignored", func(t *testing.T) {
		var hits int
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ })
		mgr, _, _ := stack(t, handler, session.NewMemoryStore())
		mgr.Restore(context.Background())

		snap, err := mgr.CompleteDeepLinkAuth(context.Background(), "songbox://auth?foo=bar")
		if err != nil {
			t.Fatalf("expected nil error for token-less redirect, got %v", err)
		}
		if snap.Status != session.StatusUnauthenticated {
			t.Errorf("expected session unchanged, got %s", snap.Status)
		}
		if hits != 0 {
			t.Errorf("expected no backend calls, got %d", hits)
		}
	})

	t.Run("valid token resolves authenticated", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok-deep" {
				t.Errorf("expected bearer tok-deep, got %q", got)
			}
			writeUser(w)
		})

		store := session.NewMemoryStore()
		mgr, _, _ := stack(t, handler, store)

		snap, err := mgr.CompleteDeepLinkAuth(context.Background(), "songbox://auth?token=tok-deep")
		if err != nil {
			t.Fatalf("deep link completion failed: %v", err)
		}
		if snap.Status != session.StatusAuthenticated {
			t.Errorf("expected authenticated, got %s", snap.Status)
		}
		if tok, _ := store.Load(); tok != "tok-deep" {
			t.Errorf("expected persisted token tok-deep, got %q", tok)
		}
	})

	t.Run("rejected token fails and clears the store", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		store := session.NewMemoryStore()
		mgr, _, _ := stack(t, handler, store)

		_, err := mgr.CompleteDeepLinkAuth(context.Background(), "songbox://auth?token=bogus")
		if !errors.Is(err, shared.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
		if mgr.Snapshot().Status != session.StatusUnauthenticated {
			t.Error("expected unauthenticated after rejected token")
		}
		if tok, _ := store.Load(); tok != "" {
			t.Errorf("expected cleared store, got %q", tok)
		}
	})

	t.Run("malformed url fails without state change", func(t *testing.T) {
		mgr, _, _ := stack(t, http.NotFoundHandler(), session.NewMemoryStore())
		mgr.Restore(context.Background())

		_, err := mgr.CompleteDeepLinkAuth(context.Background(), "://missing-scheme")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if mgr.Snapshot().Status != session.StatusUnauthenticated {
			t.Error("expected session unchanged")
		}
	})
}

// Restore and CompleteDeepLinkAuth may run at the same time when the
// redirect lands during startup. Both replace the snapshot wholesale, so
// whichever finishes last must leave a terminal state with the user set.
func TestConcurrentRestoreAndDeepLink(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeUser(w)
	})

	for i := 0; i < 20; i++ {
		store := session.NewMemoryStore()
		store.Save("tok-abc")
		mgr, _, _ := stack(t, handler, store)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			mgr.Restore(context.Background())
		}()
		go func() {
			defer wg.Done()
			mgr.CompleteDeepLinkAuth(context.Background(), "songbox://auth?token=tok-deep")
		}()
		wg.Wait()

		snap := mgr.Snapshot()
		if snap.Status != session.StatusAuthenticated {
			t.Fatalf("expected a terminal authenticated state, got %s", snap.Status)
		}
		if snap.User == nil {
			t.Fatal("expected user set while authenticated")
		}
		if snap.Token != "tok-abc" && snap.Token != "tok-deep" {
			t.Errorf("expected one of the candidate tokens to win, got %q", snap.Token)
		}
		if tok, _ := store.Load(); tok == "" {
			t.Error("expected a persisted token after both paths settled")
		}
	}
}

func TestAdoptToken(t *testing.T) {
	t.Run("empty token is rejected", func(t *testing.T) {
		mgr, _, _ := stack(t, http.NotFoundHandler(), session.NewMemoryStore())

		if _, err := mgr.AdoptToken(context.Background(), ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestRegister(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "username required"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"jwt":  "tok-new",
			"user": map[string]any{"id": 2, "email": body["email"], "username": body["username"]},
		})
	})

	t.Run("success signs in the new account", func(t *testing.T) {
		store := session.NewMemoryStore()
		mgr, _, _ := stack(t, handler, store)

		snap, err := mgr.Register(context.Background(), "sam", "sam@example.com", "abc123")
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if snap.Status != session.StatusAuthenticated || snap.User.Username != "sam" {
			t.Errorf("expected authenticated sam, got %+v", snap)
		}
		if tok, _ := store.Load(); tok != "tok-new" {
			t.Errorf("expected persisted token tok-new, got %q", tok)
		}
	})

	t.Run("backend rejection stays unauthenticated", func(t *testing.T) {
		mgr, _, _ := stack(t, handler, session.NewMemoryStore())

		_, err := mgr.Register(context.Background(), "", "sam@example.com", "abc123")
		if err == nil || err.Error() != "username required" {
			t.Errorf("expected backend message, got %v", err)
		}
		if mgr.Snapshot().Status != session.StatusUnauthenticated {
			t.Error("expected unauthenticated after rejected registration")
		}
	})
}
