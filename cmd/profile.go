package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/songbox/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileMe prints the signed-in account.
func (r *Runner) ProfileMe(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	user := r.session.CurrentUser()

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlain("Username: %s\n", user.Username)
	r.writePlain("Email: %s\n", user.Email)
	r.writePlain("Following: %d\n", len(user.Following))
	return nil
}

// ProfileShow prints another user's public profile with favorites.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	profileID := cmd.StringArg("id")
	if profileID == "" {
		return fmt.Errorf("%w: a profile ID is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	details, err := r.api.ProfileDetails(ctx, profileID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(details, true)
	}

	r.writePlain("Username: %s\n", details.Username)
	if me := r.session.CurrentUser(); me != nil && me.Follows(profileID) {
		r.writePlain("Following: yes\n")
	}
	if len(details.Favorites) > 0 {
		r.writePlain("\nFavorites:\n")
		for i, fav := range details.Favorites {
			r.writePlain("%d. [%s] %s\n", i+1, fav.EntityType, fav.Name)
		}
	}
	return nil
}

// ProfileFollow follows a user and refreshes the local account record.
func (r *Runner) ProfileFollow(ctx context.Context, cmd *cli.Command) error {
	return r.followOp(ctx, cmd, true)
}

// ProfileUnfollow unfollows a user and refreshes the local account record.
func (r *Runner) ProfileUnfollow(ctx context.Context, cmd *cli.Command) error {
	return r.followOp(ctx, cmd, false)
}

func (r *Runner) followOp(ctx context.Context, cmd *cli.Command, follow bool) error {
	profileID := cmd.StringArg("id")
	if profileID == "" {
		return fmt.Errorf("%w: a profile ID is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	var message string
	var err error
	if follow {
		message, err = r.api.FollowUser(ctx, profileID)
	} else {
		message, err = r.api.UnfollowUser(ctx, profileID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	// The follow graph lives on the user record, refresh it.
	if user, err := r.api.Me(ctx); err == nil {
		r.session.ReplaceUser(user)
	} else {
		r.logger.Warn("failed to refresh account record", "error", err)
	}

	return r.writePlain("✓ %s\n", message)
}

// ProfileFollowing lists the accounts the user follows.
func (r *Runner) ProfileFollowing(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	user := r.session.CurrentUser()
	if len(user.Following) == 0 {
		return r.writePlain("Not following anyone.\n")
	}

	profiles, err := r.api.FollowingDetails(ctx, user.Following)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	for i, profile := range profiles {
		r.writePlain("%d. %s (%s)\n", i+1, profile.Username, profile.ID)
	}
	return nil
}

// ProfileSetUsername changes the account's display name.
func (r *Runner) ProfileSetUsername(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: a username is required", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(ctx); err != nil {
		return err
	}

	accepted, err := r.api.UpdateUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if user, err := r.api.Me(ctx); err == nil {
		r.session.ReplaceUser(user)
	}

	return r.writePlain("✓ Username changed to %s\n", accepted)
}
