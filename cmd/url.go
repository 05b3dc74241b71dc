package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/oauthcb/internal/services"
	"github.com/desertthunder/oauthcb/internal/shared"
	"github.com/desertthunder/oauthcb/internal/ui"
	"github.com/urfave/cli/v3"
)

// AuthURL prints the authorization URL for the configured provider, redirecting to the local callback.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	effective := *config
	applyListenerFlags(cmd, &effective)
	if cmd.IsSet("client-id") {
		effective.OAuth.ClientID = cmd.String("client-id")
	}
	if cmd.IsSet("provider") {
		effective.OAuth.Provider = cmd.String("provider")
		effective.OAuth.AuthURL = ""
	}
	if cmd.IsSet("scope") {
		effective.OAuth.Scopes = cmd.StringSlice("scope")
	}
	if err := effective.Validate(); err != nil {
		return err
	}
	if effective.Server.Port == 0 {
		return fmt.Errorf("%w: url needs a fixed port, got 0", shared.ErrInvalidArgument)
	}

	callbackURL := fmt.Sprintf("http://localhost:%d%s", effective.Server.Port, effective.Server.CallbackPath)
	authURL, err := buildAuthURL(effective.OAuth, callbackURL, cmd.String("state"))
	if err != nil {
		return err
	}

	if err := ui.PrintAuthURL(r.output, authURL, callbackURL); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cmd.Bool("open") {
		if err := r.openBrowser(authURL); err != nil {
			return err
		}
	}
	return nil
}

// buildAuthURL returns the consent URL; an empty state is replaced with a random one.
func buildAuthURL(oauth shared.OAuthConfig, callbackURL, state string) (string, error) {
	svc, err := services.NewAuthorizeService(oauth, callbackURL)
	if err != nil {
		return "", err
	}
	if state == "" {
		state = shared.GenerateID()
	}
	return svc.AuthURL(state), nil
}
