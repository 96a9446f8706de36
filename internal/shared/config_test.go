package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Backend.BaseURL != "https://songbox-ordinario.onrender.com" {
		t.Errorf("unexpected base URL %q", config.Backend.BaseURL)
	}
	if config.Backend.TimeoutSeconds != 30 {
		t.Errorf("unexpected timeout %d", config.Backend.TimeoutSeconds)
	}
	if config.Backend.RequestsPerSecond != 8.0 {
		t.Errorf("unexpected rate %v", config.Backend.RequestsPerSecond)
	}
	if config.Database.Path != "songbox.db" {
		t.Errorf("unexpected database path %q", config.Database.Path)
	}
	if config.Server.Port != 8423 {
		t.Errorf("unexpected port %d", config.Server.Port)
	}
}

func TestBackendConfigTimeout(t *testing.T) {
	if got := (BackendConfig{TimeoutSeconds: 10}).Timeout(); got != 10*time.Second {
		t.Errorf("expected 10s, got %v", got)
	}
	if got := (BackendConfig{}).Timeout(); got != 30*time.Second {
		t.Errorf("expected 30s default, got %v", got)
	}
}

func TestServerConfigAddr(t *testing.T) {
	addr := ServerConfig{Host: "127.0.0.1", Port: 8423}.Addr()
	if addr != "127.0.0.1:8423" {
		t.Errorf("unexpected addr %q", addr)
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if config.Backend.BaseURL != DefaultConfig().Backend.BaseURL {
			t.Errorf("unexpected base URL %q", config.Backend.BaseURL)
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error for existing file")
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a custom config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[backend]
base_url = "http://localhost:9999"
timeout_seconds = 5
requests_per_second = 2.0

[database]
path = "test.db"
max_open_conns = 1
max_idle_conns = 1

[server]
host = "localhost"
port = 9000
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if config.Backend.BaseURL != "http://localhost:9999" {
			t.Errorf("unexpected base URL %q", config.Backend.BaseURL)
		}
		if config.Backend.Timeout() != 5*time.Second {
			t.Errorf("unexpected timeout %v", config.Backend.Timeout())
		}
		if config.Server.Addr() != "localhost:9000" {
			t.Errorf("unexpected addr %q", config.Server.Addr())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}
