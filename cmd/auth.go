package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atredan/sheetgram/internal/server"
	"github.com/atredan/sheetgram/internal/services"
	"github.com/atredan/sheetgram/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the OAuth2 authorization-code flow against a local callback
// server and prints the resulting refresh token.
//
// Only the client id and secret are required here; this is how the refresh token
// in GOOGLE_REFRESH_TOKEN gets minted in the first place.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := shared.LoadDotenv(""); err != nil {
		r.logger.Warnf("dotenv: %v", err)
	}

	creds := &shared.Credentials{
		ClientID:     os.Getenv(shared.EnvClientID),
		ClientSecret: os.Getenv(shared.EnvClientSecret),
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: %s and %s are required", shared.ErrMissingCredentials,
			shared.EnvClientID, shared.EnvClientSecret)
	}

	addr := cmd.String("listen")
	config := services.OAuthConfig(creds, fmt.Sprintf("http://%s/callback", addr))
	state := shared.GenerateID()

	openBrowser := shared.OpenBrowser
	if cmd.Bool("no-browser") {
		openBrowser = func(url string) error {
			return r.writePlain("Open this URL in your browser:\n%s\n", url)
		}
	}

	r.logger.Infof("waiting for OAuth callback on %s", addr)

	token, err := server.Authorize(ctx, config, addr, state, openBrowser)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if token.RefreshToken == "" {
		return fmt.Errorf("%w: no refresh token returned; revoke access and retry", shared.ErrAuthFailed)
	}

	r.logger.Info("authentication successful")
	r.writePlain("✓ Authorization successful\n\n")
	r.writePlain("export %s=%s\n", shared.EnvRefreshToken, token.RefreshToken)
	return nil
}

// AuthStatus verifies the stored credentials by fetching the spreadsheet title.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	sheet, err := r.sheetClient(ctx, r.resolveSheetID(cmd))
	if err != nil {
		return err
	}

	title, err := sheet.Title(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}

	r.writePlain("✓ Credentials OK\n")
	if title != "" {
		r.writePlain("Spreadsheet: %s\n", title)
	}

	if _, err := shared.SessionID(); err != nil {
		r.writePlain("Session: ✗ %s not set\n", shared.EnvSessionID)
	} else {
		r.writePlain("Session: ✓ %s set\n", shared.EnvSessionID)
	}

	return nil
}
