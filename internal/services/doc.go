// Package services contains the two external integrations: the Google Sheets
// client and the subprocess-based profile lookup.
//
// Both sit behind narrow interfaces ([SheetClient], [ProfileFetcher]) so the
// enrichment engine can be exercised in tests without a network or a real
// subprocess.
//
// # Sheets
//
// [SheetsService] authenticates with an OAuth2 refresh token from the environment
// and performs ranged reads and single-row RAW updates against one spreadsheet ID.
//
// # Lookup
//
// [ToutatisFetcher] shells out to the toutatis CLI and returns its stdout
// verbatim. Exit status and stderr are folded into the error; the caller decides
// whether a failed lookup is fatal (it never is during a run).
package services
