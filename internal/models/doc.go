// Package models holds the row and profile record types shared across the
// spreadsheet, lookup, and enrichment layers.
//
// # Row
//
// [Row] mirrors the positional cell layout the Sheets API returns for the read
// range: the username column first, then any previously written enrichment values.
//
// # ProfileRecord
//
// [ProfileRecord] is the flat field mapping produced by parsing the lookup tool's
// output. [FieldOrder] pins the column order for writes; the mapping itself carries
// whatever keys the tool emitted, and only the named thirteen are written back.
package models
