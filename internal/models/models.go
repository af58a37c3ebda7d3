// package models defines the data model for the sheet enrichment tool
package models

import "strings"

// FieldOrder is the fixed, positional column layout for enrichment output.
//
// Field names match the lookup tool's own output verbatim, including its spelling of
// "Is buisness Account". The written row always has exactly this many cells, in this
// order, with empty strings for fields the lookup did not report.
var FieldOrder = []string{
	"Follower",
	"Following",
	"Number of posts",
	"Biography",
	"Full Name",
	"Verified",
	"Is private Account",
	"Is buisness Account",
	"userID",
	"IGTV posts",
	"Linked WhatsApp",
	"Memorial Account",
	"New Instagram user",
}

// FieldCount is the number of enrichment columns written per row.
var FieldCount = len(FieldOrder)

// Row is a positional sequence of cell strings as returned by the spreadsheet,
// starting at the username column. Index 0 is the username; cells at or beyond the
// enrichment offset are previously written enrichment values.
type Row []string

// Username returns the trimmed username cell, or "" for an empty row.
func (r Row) Username() string {
	if len(r) == 0 {
		return ""
	}
	return strings.TrimSpace(r[0])
}

// Enriched reports whether any cell at or beyond offset holds a non-empty value.
//
// offset is the index of the first enrichment column within the fetched row
// (5 for the default B..G layout).
func (r Row) Enriched(offset int) bool {
	if len(r) <= offset {
		return false
	}
	for _, cell := range r[offset:] {
		if cell != "" {
			return true
		}
	}
	return false
}

// ProfileRecord maps lookup field names to values for a single username.
//
// Produced fresh per username and discarded after the row is written; the
// spreadsheet is the only persistent store.
type ProfileRecord map[string]string

// Values maps the record into the fixed column layout.
//
// Missing fields become empty strings, never omitted, so the written range always
// spans all enrichment columns.
func (p ProfileRecord) Values() []string {
	values := make([]string, len(FieldOrder))
	for i, field := range FieldOrder {
		values[i] = p[field]
	}
	return values
}

// Empty reports whether the record holds no fields at all.
func (p ProfileRecord) Empty() bool {
	return len(p) == 0
}
