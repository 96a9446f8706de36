package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/songbox/internal/server"
	"github.com/desertthunder/songbox/internal/session"
	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// promptLine reads a single line from stdin with a label.
func promptLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing when stdin is a terminal.
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(label)
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// credentials resolves email and password from flags, prompting for whichever is missing.
func credentials(cmd *cli.Command) (string, string, error) {
	email := cmd.String("email")
	password := cmd.String("password")

	var err error
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = promptPassword("Password"); err != nil {
			return "", "", err
		}
	}

	if email == "" || password == "" {
		return "", "", fmt.Errorf("%w: email and password are required", shared.ErrMissingCredentials)
	}

	return email, password, nil
}

// AuthLogin signs in with email and password.
//
// On success the browser opens the backend's Spotify authorization page; the
// session is already valid regardless of how that page resolves.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email, password, err := credentials(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("signing in", "email", email)

	snap, err := r.session.Login(ctx, email, password)
	if err != nil {
		// The backend's message is user-facing, print it as-is.
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.writePlain("✓ Signed in as %s\n", snap.User.Username)
	r.writePlain("→ A browser window opened for Spotify authorization.\n")
	r.writePlain("  Run 'songbox auth wait' to capture the redirect, or paste it into 'songbox auth complete <url>'.\n")
	return nil
}

// AuthRegister creates an account and signs in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	email, password, err := credentials(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("registering account", "username", username, "email", email)

	snap, err := r.session.Register(ctx, username, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.writePlain("✓ Account created, signed in as %s\n", snap.User.Username)
	r.writePlain("→ A browser window opened for Spotify authorization.\n")
	return nil
}

// AuthLogout clears the persisted session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.session.Logout()
	r.writePlain("✓ Signed out\n")
	return nil
}

// AuthStatus restores and prints the current session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	snap := r.restoreSession(ctx)

	if cmd.Bool("json") {
		payload := map[string]any{"status": snap.Status.String()}
		if snap.User != nil {
			payload["username"] = snap.User.Username
			payload["email"] = snap.User.Email
		}
		if expiry, ok := session.TokenExpiry(snap.Token); ok {
			payload["token_expires"] = expiry.Format(time.RFC3339)
		}
		return r.writeJSON(payload, true)
	}

	if snap.Status != session.StatusAuthenticated {
		r.writePlain("✗ Not signed in (%s)\n", snap.Status)
		return nil
	}

	r.writePlain("✓ Signed in as %s (%s)\n", snap.User.Username, snap.User.Email)
	if expiry, ok := session.TokenExpiry(snap.Token); ok {
		r.writePlain("Token expires: %s\n", expiry.Format(time.RFC1123))
	}
	return nil
}

// AuthComplete finishes a browser sign-in from a pasted deep-link URL.
func (r *Runner) AuthComplete(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: a redirect URL is required", shared.ErrMissingArgument)
	}

	before := r.session.Snapshot()
	snap, err := r.session.CompleteDeepLinkAuth(ctx, rawURL)
	if err != nil {
		return err
	}

	if snap == before {
		r.writePlain("No token in URL, session unchanged\n")
		return nil
	}

	r.writePlain("✓ Signed in as %s\n", snap.User.Username)
	return nil
}

// AuthWait listens for the backend's post-authorization redirect on the
// configured localhost address and adopts the token it carries.
func (r *Runner) AuthWait(ctx context.Context, cmd *cli.Command) error {
	timeoutSecs := cmd.Int("timeout")
	if timeoutSecs <= 0 {
		timeoutSecs = 120
	}

	handler := server.NewAuthCallbackHandler()
	router := server.NewBasicRouter()
	router.Handler(handler)

	serverAddr := r.config.Server.Addr()
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("waiting for sign-in redirect at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	r.writePlain("→ Waiting for sign-in redirect at http://%s/callback (%d second timeout)...\n", serverAddr, timeoutSecs)

	timeout := time.NewTimer(time.Duration(timeoutSecs) * time.Second)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		shutdown(httpServer, r)
		return fmt.Errorf("%w: no redirect received after %d seconds", shared.ErrTimeout, timeoutSecs)
	}

	shutdown(httpServer, r)

	if result.Error() != nil {
		return fmt.Errorf("sign-in failed: %w", result.Error())
	}

	snap, err := r.session.AdoptToken(ctx, result.Token)
	if err != nil {
		return err
	}

	r.writePlain("✓ Signed in as %s\n", snap.User.Username)
	return nil
}

func shutdown(srv *http.Server, r *Runner) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}
}

// AuthImport adopts a session token lifted from a browser "Copy as cURL" command.
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	r.logger.Info("parsing cURL command for session token")

	var curlHeaders *shared.CurlHeaders
	var err error

	if curlFile != "" {
		curlHeaders, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
	} else {
		curlHeaders, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
	}

	token, err := curlHeaders.BearerToken()
	if err != nil {
		return err
	}

	snap, err := r.session.AdoptToken(ctx, token)
	if err != nil {
		return err
	}

	r.writePlain("✓ Signed in as %s\n", snap.User.Username)
	return nil
}
