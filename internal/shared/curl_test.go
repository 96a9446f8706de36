package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCurl = `curl 'https://songbox-ordinario.onrender.com/me' \
  -H 'Accept: application/json' \
  -H 'Authorization: Bearer tok-abc' \
  -H "User-Agent: Mozilla/5.0"`

func TestParseCurlCommand(t *testing.T) {
	t.Run("extracts headers from both quote styles", func(t *testing.T) {
		headers, err := ParseCurlCommand([]byte(sampleCurl))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		if headers.Headers["accept"] != "application/json" {
			t.Errorf("unexpected accept header %q", headers.Headers["accept"])
		}
		if headers.Headers["authorization"] != "Bearer tok-abc" {
			t.Errorf("unexpected authorization header %q", headers.Headers["authorization"])
		}
		if headers.Headers["user-agent"] != "Mozilla/5.0" {
			t.Errorf("unexpected user-agent header %q", headers.Headers["user-agent"])
		}
	})

	t.Run("command without headers", func(t *testing.T) {
		if _, err := ParseCurlCommand([]byte("curl https://example.com")); err == nil {
			t.Error("expected error for a command without headers")
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	t.Run("reads a curl script", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "request.sh")
		if err := os.WriteFile(path, []byte(sampleCurl), 0644); err != nil {
			t.Fatalf("failed to write script: %v", err)
		}

		headers, err := ParseCurlFile(path)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if headers.Headers["authorization"] != "Bearer tok-abc" {
			t.Errorf("unexpected authorization header %q", headers.Headers["authorization"])
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ParseCurlFile(filepath.Join(t.TempDir(), "missing.sh")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestBearerToken(t *testing.T) {
	t.Run("extracts the token", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"authorization": "Bearer tok-abc"}}

		token, err := headers.BearerToken()
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if token != "tok-abc" {
			t.Errorf("expected tok-abc, got %q", token)
		}
	})

	t.Run("accepts any scheme casing", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"authorization": "bearer tok-abc"}}

		token, err := headers.BearerToken()
		if err != nil || token != "tok-abc" {
			t.Errorf("expected tok-abc, got %q, %v", token, err)
		}
	})

	t.Run("missing authorization header", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"accept": "application/json"}}

		if _, err := headers.BearerToken(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("non-bearer authorization", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"authorization": "Basic dXNlcjpwYXNz"}}

		if _, err := headers.BearerToken(); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
