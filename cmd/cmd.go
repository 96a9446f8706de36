// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// entityFlags are shared by every command addressing a single catalog entity.
func entityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "type",
			Aliases:  []string{"t"},
			Usage:    "Entity type (album, artist, song)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "id",
			Usage:    "Entity ID",
			Required: true,
		},
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles session management
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the SongBox session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Account email (prompted when omitted)",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when omitted)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Account email (prompted when omitted)",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when omitted)",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the persisted session",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show the current session state",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:  "complete",
				Usage: "Finish a browser sign-in from a pasted deep-link URL",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Action: r.AuthComplete,
			},
			{
				Name:  "wait",
				Usage: "Listen for the browser sign-in redirect on localhost",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Seconds to wait for the redirect",
						Value: 120,
					},
				},
				Action: r.AuthWait,
			},
			{
				Name:  "import",
				Usage: "Adopt a session token from a browser cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.AuthImport,
			},
		},
	}
}

// homeCommand renders the home feed
func homeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "home",
		Usage: "Show the home feed (charts, history, videos)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Home,
	}
}

// showCommand handles catalog detail lookups
func showCommand(r *Runner) *cli.Command {
	detailFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}

	return &cli.Command{
		Name:  "show",
		Usage: "Show catalog details",
		Commands: []*cli.Command{
			{
				Name:      "album",
				Usage:     "Show an album with its rating",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     detailFlags,
				Action:    r.ShowAlbum,
			},
			{
				Name:      "artist",
				Usage:     "Show an artist with discography",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     detailFlags,
				Action:    r.ShowArtist,
			},
			{
				Name:      "song",
				Usage:     "Show a song with its rating",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     detailFlags,
				Action:    r.ShowSong,
			},
		},
	}
}

// searchCommand handles catalog and profile search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search albums, songs, artists, or profiles",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Search category (album, song, artist, profile)",
				Value:   "album",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}

// favoritesCommand handles the favorites list
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorites",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorites",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Read from the local cache instead of the backend",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Mark an entity as a favorite",
				Flags: append(entityFlags(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name for the favorite",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Cover image URL",
					},
				),
				Action: r.FavoritesAdd,
			},
			{
				Name:   "remove",
				Usage:  "Unmark a favorite",
				Flags:  entityFlags(),
				Action: r.FavoritesRemove,
			},
			{
				Name:  "export",
				Usage: "Export favorites to CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.FavoritesExport,
			},
		},
	}
}

// rateCommand submits star ratings
func rateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rate",
		Usage: "Rate an entity 1-5 stars",
		Flags: append(entityFlags(),
			&cli.IntFlag{
				Name:     "stars",
				Aliases:  []string{"s"},
				Usage:    "Rating from 1 to 5",
				Required: true,
			},
		),
		Action: r.Rate,
	}
}

// commentsCommand handles entity comment threads
func commentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "comments",
		Usage: "Read and write entity comments",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List comments on an entity",
				Flags: append(entityFlags(),
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page number",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Comments per page",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				),
				Action: r.CommentsList,
			},
			{
				Name:      "add",
				Usage:     "Post a comment on an entity",
				Arguments: []cli.Argument{&cli.StringArg{Name: "text"}},
				Flags:     entityFlags(),
				Action:    r.CommentsAdd,
			},
			{
				Name:      "delete",
				Usage:     "Delete one of your comments",
				Arguments: []cli.Argument{&cli.StringArg{Name: "comment-id"}},
				Flags:     entityFlags(),
				Action:    r.CommentsDelete,
			},
			{
				Name:      "like",
				Usage:     "Toggle a like on a comment",
				Arguments: []cli.Argument{&cli.StringArg{Name: "comment-id"}},
				Flags:     entityFlags(),
				Action:    r.CommentsLike,
			},
			{
				Name:      "dislike",
				Usage:     "Toggle a dislike on a comment",
				Arguments: []cli.Argument{&cli.StringArg{Name: "comment-id"}},
				Flags:     entityFlags(),
				Action:    r.CommentsDislike,
			},
		},
	}
}

// profileCommand handles account and follow graph operations
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Profiles and the follow graph",
		Commands: []*cli.Command{
			{
				Name:  "me",
				Usage: "Show the signed-in account",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileMe,
			},
			{
				Name:      "show",
				Usage:     "Show another user's profile",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileShow,
			},
			{
				Name:      "follow",
				Usage:     "Follow a user",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ProfileFollow,
			},
			{
				Name:      "unfollow",
				Usage:     "Unfollow a user",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ProfileUnfollow,
			},
			{
				Name:   "following",
				Usage:  "List the accounts you follow",
				Action: r.ProfileFollowing,
			},
			{
				Name:      "set-username",
				Usage:     "Change your display name",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Action:    r.ProfileSetUsername,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing SongBox",
		Action:  r.TUI,
	}
}
