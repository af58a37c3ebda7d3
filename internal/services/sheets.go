// Google Sheets implementation of [SheetClient]
//
// Built on the official Sheets v4 client with a refresh-token OAuth2 token source.
package services

import (
	"context"
	"fmt"

	"github.com/atredan/sheetgram/internal/models"
	"github.com/atredan/sheetgram/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SpreadsheetScope is the OAuth scope required for read/update calls.
const SpreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// OAuthConfig builds the OAuth2 config for the Google token endpoint with the
// spreadsheet scope. redirectURL may be empty for pure refresh-token use.
func OAuthConfig(creds *shared.Credentials, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{SpreadsheetScope},
		Endpoint:     google.Endpoint,
	}
}

// TokenSource returns a self-refreshing token source seeded with the stored
// refresh token. The access token is minted on first use.
func TokenSource(ctx context.Context, creds *shared.Credentials) oauth2.TokenSource {
	config := OAuthConfig(creds, "")
	return config.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
}

// SheetsService implements [SheetClient] against one spreadsheet ID.
type SheetsService struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewSheetsService creates an authenticated Sheets client for the given spreadsheet.
//
// Extra options are appended after the token source so tests can override the
// endpoint and HTTP client.
func NewSheetsService(ctx context.Context, creds *shared.Credentials, spreadsheetID string, opts ...option.ClientOption) (*SheetsService, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is required", shared.ErrInvalidInput)
	}

	clientOpts := append([]option.ClientOption{option.WithTokenSource(TokenSource(ctx, creds))}, opts...)
	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheets service: %w", err)
	}

	return &SheetsService{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// ReadRows fetches the given A1 range and converts each row to a positional [models.Row].
func (s *SheetsService) ReadRows(ctx context.Context, readRange string) ([]models.Row, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSheetRead, err)
	}

	rows := make([]models.Row, 0, len(resp.Values))
	for _, cells := range resp.Values {
		row := make(models.Row, len(cells))
		for i, cell := range cells {
			row[i] = cellString(cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// UpdateRow writes values into the given single-row A1 range with RAW input mode.
func (s *SheetsService) UpdateRow(ctx context.Context, writeRange string, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}

	body := &sheets.ValueRange{Values: [][]any{cells}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSheetWrite, err)
	}

	return nil
}

// Title fetches the spreadsheet's title property.
func (s *SheetsService) Title(ctx context.Context) (string, error) {
	resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("properties(title)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrSheetRead, err)
	}

	if resp.Properties == nil {
		return "", nil
	}
	return resp.Properties.Title, nil
}

// cellString coerces a Sheets API cell value to a string.
//
// The API returns cells as interface{}; anything non-string (numbers, bools) is
// formatted with fmt.
func cellString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
