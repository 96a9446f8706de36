package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/session"
	"github.com/desertthunder/songbox/internal/shared"
	tu "github.com/desertthunder/songbox/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(io.Discard)
			mgr := session.NewManager(session.Options{Logger: logger})
			var buf bytes.Buffer

			r := NewRunner(RunnerOpts{
				Config:  config,
				Session: mgr,
				Logger:  logger,
				Output:  &buf,
			})

			if r.config != config {
				t.Error("expected the provided config")
			}
			if r.session != mgr {
				t.Error("expected the provided session manager")
			}
			if r.logger != logger {
				t.Error("expected the provided logger")
			}
			if r.output != &buf {
				t.Error("expected the provided output writer")
			}
			if r.engine == nil {
				t.Error("expected a feed engine to be built")
			}
		})

		t.Run("defaults", func(t *testing.T) {
			r := NewRunner(RunnerOpts{})

			if r.config == nil {
				t.Error("expected a default config")
			}
			if r.session == nil {
				t.Error("expected a default session manager")
			}
			if r.logger == nil {
				t.Error("expected a default logger")
			}
			if r.output != os.Stdout {
				t.Error("expected stdout as the default output")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		payload := map[string]string{"name": "Blue"}

		t.Run("compact", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(RunnerOpts{Output: &buf, Logger: shared.NewLogger(io.Discard)})

			if err := r.writeJSON(payload, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if buf.String() != "{\"name\":\"Blue\"}\n" {
				t.Errorf("unexpected output %q", buf.String())
			}
		})

		t.Run("pretty", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(RunnerOpts{Output: &buf, Logger: shared.NewLogger(io.Discard)})

			if err := r.writeJSON(payload, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if !strings.Contains(buf.String(), "\n  \"name\"") {
				t.Errorf("expected indented output, got %q", buf.String())
			}
		})

		t.Run("write failure", func(t *testing.T) {
			r := NewRunner(RunnerOpts{Output: &tu.FWriter{}, Logger: shared.NewLogger(io.Discard)})

			if err := r.writeJSON(payload, false); err == nil {
				t.Error("expected write error")
			}
		})

		t.Run("unmarshalable payload", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(RunnerOpts{Output: &buf, Logger: shared.NewLogger(io.Discard)})

			if err := r.writeJSON(make(chan int), false); err == nil {
				t.Error("expected marshal error")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf, Logger: shared.NewLogger(io.Discard)})

		if err := r.writePlain("hello %s\n", "sam"); err != nil {
			t.Fatalf("writePlain failed: %v", err)
		}
		if buf.String() != "hello sam\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("requireAuth", func(t *testing.T) {
		t.Run("without a session", func(t *testing.T) {
			logger := shared.NewLogger(io.Discard)
			mgr := session.NewManager(session.Options{Logger: logger})
			mgr.SetBackend(&tu.MockBackend{})

			r := NewRunner(RunnerOpts{Session: mgr, Logger: logger, Output: io.Discard})

			err := r.requireAuth(context.Background())
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("restores only once", func(t *testing.T) {
			logger := shared.NewLogger(io.Discard)
			var meCalls int

			store := session.NewMemoryStore()
			store.Save("tok-abc")
			mgr := session.NewManager(session.Options{Store: store, Logger: logger})
			mgr.SetBackend(&tu.MockBackend{
				MeFunc: func(ctx context.Context) (*models.User, error) {
					meCalls++
					return &models.User{Username: "sam"}, nil
				},
			})

			r := NewRunner(RunnerOpts{Session: mgr, Logger: logger, Output: io.Discard})

			if err := r.requireAuth(context.Background()); err != nil {
				t.Fatalf("requireAuth failed: %v", err)
			}
			if err := r.requireAuth(context.Background()); err != nil {
				t.Fatalf("second requireAuth failed: %v", err)
			}
			if meCalls != 1 {
				t.Errorf("expected one validation call, got %d", meCalls)
			}
		})
	})
}
