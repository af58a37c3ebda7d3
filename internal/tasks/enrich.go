// package tasks implements the enrichment run: sequential row iteration with
// fixed-delay throttling and catch-and-continue error handling.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/atredan/sheetgram/internal/models"
	"github.com/atredan/sheetgram/internal/profile"
	"github.com/atredan/sheetgram/internal/services"
	"github.com/atredan/sheetgram/internal/shared"
	"github.com/charmbracelet/log"
)

// RowStatus classifies the outcome of one row.
type RowStatus int

const (
	RowUpdated RowStatus = iota
	RowSkippedEmpty
	RowSkippedEnriched
	RowNoData
	RowFailed
)

func (s RowStatus) String() string {
	switch s {
	case RowUpdated:
		return "updated"
	case RowSkippedEmpty:
		return "skipped_empty"
	case RowSkippedEnriched:
		return "skipped_enriched"
	case RowNoData:
		return "no_data"
	case RowFailed:
		return "failed"
	default:
		return ""
	}
}

// RowOutcome records what happened to a single sheet row during a run.
type RowOutcome struct {
	Index    int       // 1-based sheet row number
	Username string
	Status   RowStatus
	Err      error
}

// EnrichResult summarizes a completed (or aborted) enrichment run.
type EnrichResult struct {
	RunID    string
	Total    int // rows visited
	Updated  int
	Skipped  int // empty usernames plus already-enriched rows
	NoData   int // lookups that failed or returned nothing
	Failed   int // row writes that failed
	Duration time.Duration
	Outcomes []RowOutcome
}

// EnrichOpts carries the per-run flags.
type EnrichOpts struct {
	Session  string // Instagram session id passed to the lookup tool
	TestMode bool   // process only the first data row
	Force    bool   // overwrite rows that already have enrichment data
}

// EnrichEngine orchestrates a run over the configured sheet range.
//
// Strictly single-threaded: rows are visited in sheet order and the only
// suspension is sleep-based throttling. Per-row failures never abort the run;
// only a failed range read does.
type EnrichEngine struct {
	sheet    services.SheetClient
	fetcher  services.ProfileFetcher
	config   *shared.Config
	logger   *log.Logger
	throttle *Throttle
}

// NewEnrichEngine creates an engine with the provided dependencies.
func NewEnrichEngine(sheet services.SheetClient, fetcher services.ProfileFetcher, config *shared.Config, logger *log.Logger) *EnrichEngine {
	if config == nil {
		config = shared.DefaultConfig()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &EnrichEngine{
		sheet:    sheet,
		fetcher:  fetcher,
		config:   config,
		logger:   logger,
		throttle: NewThrottle(config.Rate.RequestDelay()),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *EnrichEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run executes the enrichment loop and returns a summary.
//
// The terminal state is "all rows visited". An empty sheet is not an error; a
// failed range read is, and aborts before any row is touched. Context
// cancellation aborts between rows and during any pause, returning the partial
// result alongside ctx's error.
func (e *EnrichEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts EnrichOpts) (*EnrichResult, error) {
	if e.sheet == nil {
		return nil, fmt.Errorf("%w: sheet client not initialized", shared.ErrInvalidInput)
	}
	if e.fetcher == nil {
		return nil, fmt.Errorf("%w: profile fetcher not initialized", shared.ErrInvalidInput)
	}

	offset, err := e.config.Sheet.EnrichedOffset()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := &EnrichResult{RunID: shared.GenerateID()}
	logger := shared.WithLogger(e.logger, "run", result.RunID)

	e.sendProgress(progress, fetchRowsUpdate())

	rows, err := e.sheet.ReadRows(ctx, e.config.Sheet.ReadRange())
	if err != nil {
		return nil, fmt.Errorf("failed to process spreadsheet: %w", err)
	}

	if len(rows) == 0 {
		logger.Info("no usernames found in spreadsheet")
		result.Duration = time.Since(start)
		e.sendProgress(progress, finishedUpdate(result))
		return result, nil
	}

	if opts.TestMode {
		logger.Warn("test mode: processing only first row")
		rows = rows[:1]
	}

	e.sendProgress(progress, rowsFetchedUpdate(len(rows)))

	firstRow := e.config.Sheet.FirstDataRow
	batchSize := e.config.Rate.BatchSize
	total := len(rows)

	for i, row := range rows {
		idx := firstRow + i
		step := i + 1

		if batchSize > 0 && i > 0 && i%batchSize == 0 {
			logger.Infof("taking a %s break to avoid rate limits", e.config.Rate.BatchDelay())
			e.sendProgress(progress, batchPauseUpdate(step, total, e.config.Rate.BatchDelay().Seconds()))
			if err := shared.Sleep(ctx, e.config.Rate.BatchDelay()); err != nil {
				result.Duration = time.Since(start)
				return result, err
			}
		}

		outcome := e.processRow(ctx, logger, progress, row, idx, step, total, offset, opts)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Total++

		switch outcome.Status {
		case RowUpdated:
			result.Updated++
		case RowSkippedEmpty, RowSkippedEnriched:
			result.Skipped++
		case RowNoData:
			result.NoData++
		case RowFailed:
			result.Failed++
		}

		if ctx.Err() != nil {
			result.Duration = time.Since(start)
			return result, ctx.Err()
		}
	}

	result.Duration = time.Since(start)
	logger.Infof("run complete: %d updated, %d skipped, %d no data, %d failed",
		result.Updated, result.Skipped, result.NoData, result.Failed)
	e.sendProgress(progress, finishedUpdate(result))

	return result, nil
}

// processRow handles one sheet row: skip checks, throttled lookup, parse, write.
func (e *EnrichEngine) processRow(ctx context.Context, logger *log.Logger, progress chan<- ProgressUpdate,
	row models.Row, idx, step, total, offset int, opts EnrichOpts) RowOutcome {

	username := row.Username()
	outcome := RowOutcome{Index: idx, Username: username}

	if username == "" {
		logger.Infof("row %d: skipping empty username", idx)
		e.sendProgress(progress, skipRowUpdate(step, total, "(empty)", "no username"))
		outcome.Status = RowSkippedEmpty
		return outcome
	}

	if row.Enriched(offset) && !opts.Force {
		logger.Infof("row %d: skipping %s - already processed (use --force to update)", idx, username)
		e.sendProgress(progress, skipRowUpdate(step, total, username, "already processed"))
		outcome.Status = RowSkippedEnriched
		return outcome
	}

	logger.Infof("row %d: waiting %s before next request", idx, e.config.Rate.RequestDelay())
	if err := e.throttle.Wait(ctx); err != nil {
		outcome.Status = RowFailed
		outcome.Err = err
		return outcome
	}

	e.sendProgress(progress, lookupUpdate(step, total, username))
	logger.Infof("row %d: fetching data for %s", idx, username)

	raw, err := e.fetcher.Fetch(ctx, username, opts.Session)
	if err != nil {
		logger.Errorf("row %d: error fetching data for %s: %v", idx, username, err)
		e.sendProgress(progress, rowErrorUpdate(step, total, username, err))
		outcome.Status = RowNoData
		outcome.Err = err
		return outcome
	}

	record := profile.Record(raw)
	if record.Empty() {
		logger.Warnf("row %d: no fields parsed for %s", idx, username)
		outcome.Status = RowNoData
		return outcome
	}

	writeRange := e.config.Sheet.WriteRange(idx)
	if err := e.sheet.UpdateRow(ctx, writeRange, record.Values()); err != nil {
		logger.Errorf("row %d: error processing row: %v", idx, err)
		e.sendProgress(progress, rowErrorUpdate(step, total, username, err))
		outcome.Status = RowFailed
		outcome.Err = err
		return outcome
	}

	logger.Infof("row %d: updated data for %s", idx, username)
	e.sendProgress(progress, writeRowUpdate(step, total, username))

	// Respect rate limits
	if err := shared.Sleep(ctx, e.config.Rate.WriteDelay()); err != nil {
		outcome.Status = RowUpdated
		outcome.Err = err
		return outcome
	}

	outcome.Status = RowUpdated
	return outcome
}
