package tasks

import "fmt"

// ProgressUpdate represents a progress event during an enrichment run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchRows Phase = iota
	BatchPause
	Lookup
	WriteRow
	SkipRow
	RowError
	Finished
)

func (p Phase) String() string {
	switch p {
	case FetchRows:
		return "fetch_rows"
	case BatchPause:
		return "batch_pause"
	case Lookup:
		return "lookup"
	case WriteRow:
		return "write_row"
	case SkipRow:
		return "skip_row"
	case RowError:
		return "row_error"
	case Finished:
		return "finished"
	default:
		return ""
	}
}

func fetchRowsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRows,
		Step:    1,
		Total:   1,
		Message: "Fetching rows from spreadsheet...",
	}
}

func rowsFetchedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRows,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d rows to process", count),
		Data:    count,
	}
}

func batchPauseUpdate(step, total int, seconds float64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchPause,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Taking a %.0fs break to avoid rate limits...", seconds),
	}
}

func lookupUpdate(step, total int, username string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Lookup,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching data for %s...", step, total, username),
	}
}

func writeRowUpdate(step, total int, username string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteRow,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ Updated data for %s", step, total, username),
	}
}

func skipRowUpdate(step, total int, username, reason string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SkipRow,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ⏭ Skipping %s: %s", step, total, username, reason),
	}
}

func rowErrorUpdate(step, total int, username string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RowError,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, username, err),
	}
}

func finishedUpdate(result *EnrichResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Finished,
		Step:    result.Total,
		Total:   result.Total,
		Message: fmt.Sprintf("Done: %d updated, %d skipped, %d failed", result.Updated, result.Skipped, result.Failed),
		Data:    result,
	}
}
