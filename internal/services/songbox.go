package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/session"
)

const defaultBaseURL = "https://songbox-ordinario.onrender.com"

var _ session.AuthBackend = (*SongBoxService)(nil)

// APIError is a non-2xx backend response.
//
// Message carries the backend's user-facing message field verbatim and is
// surfaced to the user unchanged (credential errors in particular).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("songbox API error: status %d", e.StatusCode)
}

// SongBoxService provides typed access to the SongBox backend API.
type SongBoxService struct {
	baseURL    string
	httpClient *http.Client
}

// NewSongBoxService creates a backend client for the given origin.
//
// The client should be built around a [session.Transport] so every request
// carries the current bearer token.
func NewSongBoxService(baseURL string, client *http.Client) *SongBoxService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SongBoxService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// do issues a request and decodes the JSON response into out (when non-nil).
// Non-2xx responses become [*APIError] with the backend's message field.
func (s *SongBoxService) do(req *http.Request, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// get performs a GET request with optional query parameters.
func (s *SongBoxService) get(ctx context.Context, path string, query url.Values, out any) error {
	fullURL := s.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return s.do(req, out)
}

// post performs a POST request with a JSON body.
func (s *SongBoxService) post(ctx context.Context, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req, out)
}

// del performs a DELETE request.
func (s *SongBoxService) del(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return s.do(req, nil)
}

// Login exchanges credentials for a token and user record via POST /login.
func (s *SongBoxService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}

	var resp models.AuthResponse
	if err := s.post(ctx, "/login", payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Register creates an account via POST /register; same response shape as Login.
func (s *SongBoxService) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}

	var resp models.AuthResponse
	if err := s.post(ctx, "/register", payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Me returns the account owning the bearer token attached to the request.
func (s *SongBoxService) Me(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := s.get(ctx, "/me", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("backend returned no user record")
	}

	return resp.User, nil
}
