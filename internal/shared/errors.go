package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrMissingSession     = fmt.Errorf("missing session id")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// Spreadsheet errors
	ErrSheetRead  = fmt.Errorf("spreadsheet read failed")
	ErrSheetWrite = fmt.Errorf("spreadsheet write failed")
	ErrNoRows     = fmt.Errorf("no usernames found in spreadsheet")

	// Lookup errors
	ErrLookupFailed  = fmt.Errorf("profile lookup failed")
	ErrEmptyUsername = fmt.Errorf("empty username")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
