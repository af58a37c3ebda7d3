// package services defines narrow interfaces for the spreadsheet and profile lookup integrations
package services

import (
	"context"

	"github.com/atredan/sheetgram/internal/models"
)

// SheetClient defines read/update access to a single spreadsheet.
type SheetClient interface {
	// ReadRows fetches the cells in the given A1 range as positional rows.
	// An empty spreadsheet yields an empty slice, not an error.
	ReadRows(ctx context.Context, readRange string) ([]models.Row, error)

	// UpdateRow writes one row's worth of values into the given A1 range using
	// raw (unformatted) input mode.
	UpdateRow(ctx context.Context, writeRange string, values []string) error

	// Title returns the spreadsheet title, used to verify credentials.
	Title(ctx context.Context) (string, error)
}

// ProfileFetcher retrieves raw profile lookup output for a username.
//
// Implementations return the tool's standard output verbatim; parsing is the
// caller's concern. A lookup failure is an error, not empty output.
type ProfileFetcher interface {
	Fetch(ctx context.Context, username, session string) (string, error)

	// Name returns the fetcher's name for logging (e.g. "toutatis").
	Name() string
}
