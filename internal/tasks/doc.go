// Package tasks implements the enrichment run over a spreadsheet's rows.
//
// The core abstraction is [EnrichEngine], which fetches the configured range
// once, then visits each row in order: skip rows without a username or with
// existing enrichment data (unless forced), throttle, run the profile lookup,
// parse its output, and issue a single-row update. Failures on one row are
// logged and the loop continues; only the initial range read is fatal.
//
// Operations emit [ProgressUpdate] values via a channel for non-blocking status
// reporting to the CLI/UI layers.
package tasks
