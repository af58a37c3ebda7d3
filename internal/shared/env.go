package shared

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names for the Google OAuth credentials and the Instagram session.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvRefreshToken = "GOOGLE_REFRESH_TOKEN"
	EnvSessionID    = "INSTAGRAM_SESSION_ID"
)

// Credentials holds the OAuth fields used to build an authenticated spreadsheet client.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// LoadDotenv loads a .env file into the process environment when one exists.
//
// A missing file is not an error; variables already set in the environment win.
func LoadDotenv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadCredentials reads the Google OAuth credentials from the environment.
//
// All three fields are required; the returned error names every missing variable so
// the run aborts before any network call.
func LoadCredentials() (*Credentials, error) {
	creds := &Credentials{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		RefreshToken: os.Getenv(EnvRefreshToken),
	}

	var missing []string
	if creds.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if creds.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if creds.RefreshToken == "" {
		missing = append(missing, EnvRefreshToken)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return creds, nil
}

// SessionID returns the Instagram session id from the environment.
func SessionID() (string, error) {
	session := os.Getenv(EnvSessionID)
	if session == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrMissingSession, EnvSessionID)
	}
	return session, nil
}
