package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songbox/internal/repositories"
	"github.com/desertthunder/songbox/internal/services"
	"github.com/desertthunder/songbox/internal/session"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/desertthunder/songbox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	session   *session.Manager
	api       *services.SongBoxService
	engine    *tasks.FeedEngine
	favorites *repositories.FavoriteRepository
	logger    *log.Logger
	output    io.Writer

	restoreOnce sync.Once
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Session   *session.Manager
	API       *services.SongBoxService
	Favorites *repositories.FavoriteRepository
	Logger    *log.Logger
	Output    io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Session == nil {
		opts.Session = session.NewManager(session.Options{
			Logger:  opts.Logger,
			BaseURL: opts.Config.Backend.BaseURL,
		})
	}

	var catalog tasks.CatalogAPI
	var social tasks.SocialAPI
	if opts.API != nil {
		catalog = opts.API
		social = opts.API
	}
	var cache tasks.FavoriteCache
	if opts.Favorites != nil {
		cache = opts.Favorites
	}
	engine := tasks.NewFeedEngine(catalog, social, cache)

	return &Runner{
		config:    opts.Config,
		session:   opts.Session,
		api:       opts.API,
		engine:    engine,
		favorites: opts.Favorites,
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, homeCommand, showCommand, searchCommand, favoritesCommand, rateCommand, commentsCommand, profileCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// restoreSession resolves the persisted session once per process.
func (r *Runner) restoreSession(ctx context.Context) session.Snapshot {
	r.restoreOnce.Do(func() {
		r.session.Restore(ctx)
	})
	return r.session.Snapshot()
}

// requireAuth restores the session and fails unless it resolved to Authenticated.
func (r *Runner) requireAuth(ctx context.Context) error {
	snap := r.restoreSession(ctx)
	if snap.Status != session.StatusAuthenticated {
		return fmt.Errorf("%w: run 'songbox auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
