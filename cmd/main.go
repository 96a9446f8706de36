package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/desertthunder/songbox/internal/repositories"
	"github.com/desertthunder/songbox/internal/services"
	"github.com/desertthunder/songbox/internal/session"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var store session.TokenStore = session.NewMemoryStore()
	var favorites *repositories.FavoriteRepository

	// The database only exists after `songbox setup database`; without it the
	// session lives for a single invocation.
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			store = repositories.NewTokenRepository(db)
			favorites = repositories.NewFavoriteRepository(db)
		} else {
			logger.Warnf("failed to open database, session will not persist: %v", err)
		}
	}

	mgr := session.NewManager(session.Options{
		Store:   store,
		Logger:  logger,
		BaseURL: config.Backend.BaseURL,
	})

	client := &http.Client{
		Transport: session.NewTransport(mgr, config.Backend.RequestsPerSecond),
		Timeout:   config.Backend.Timeout(),
	}

	api := services.NewSongBoxService(config.Backend.BaseURL, client)
	mgr.SetBackend(api)

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Session:   mgr,
		API:       api,
		Favorites: favorites,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "songbox",
		Usage:    "Discover, rate & discuss music from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
