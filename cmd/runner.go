package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atredan/sheetgram/internal/formatter"
	"github.com/atredan/sheetgram/internal/services"
	"github.com/atredan/sheetgram/internal/shared"
	"github.com/atredan/sheetgram/internal/tasks"
	"github.com/atredan/sheetgram/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	output  io.Writer
	sheet   services.SheetClient
	fetcher services.ProfileFetcher
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Sheet and Fetcher are optional injection points for tests; when nil the real
// Google Sheets client and toutatis subprocess fetcher are built on demand.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Sheet   services.SheetClient
	Fetcher services.ProfileFetcher
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		output:  opts.Output,
		sheet:   opts.Sheet,
		fetcher: opts.Fetcher,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, tuiCommand, sheetCommand, authCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// reloadConfig swaps in the config file named by the --config flag when it
// differs from what the Runner was built with.
func (r *Runner) reloadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}
	if config, err := shared.LoadConfig(path); err == nil {
		r.config = config
	}
}

// resolveSheetID returns the spreadsheet id: the --sheet flag when set,
// otherwise the configured default.
func (r *Runner) resolveSheetID(cmd *cli.Command) string {
	if id := cmd.String("sheet"); id != "" {
		return id
	}
	return r.config.Sheet.SpreadsheetID
}

// resolveSession returns the session id: the --session flag when set, otherwise
// the INSTAGRAM_SESSION_ID environment variable. Missing both is fatal.
func (r *Runner) resolveSession(cmd *cli.Command) (string, error) {
	if session := cmd.String("session"); session != "" {
		return session, nil
	}
	return shared.SessionID()
}

// sheetClient returns the injected sheet client or builds the real one from
// environment credentials. Credential loading happens before any network call.
func (r *Runner) sheetClient(ctx context.Context, spreadsheetID string) (services.SheetClient, error) {
	if r.sheet != nil {
		return r.sheet, nil
	}

	if err := shared.LoadDotenv(""); err != nil {
		r.logger.Warnf("dotenv: %v", err)
	}

	creds, err := shared.LoadCredentials()
	if err != nil {
		return nil, err
	}

	return services.NewSheetsService(ctx, creds, spreadsheetID)
}

// profileFetcher returns the injected fetcher or a toutatis subprocess fetcher.
func (r *Runner) profileFetcher() services.ProfileFetcher {
	if r.fetcher != nil {
		return r.fetcher
	}
	return services.NewToutatisFetcher(r.config.Lookup.Tool, r.config.Lookup.TimeoutDuration())
}

// Enrich runs the enrichment loop over the configured sheet range.
func (r *Runner) Enrich(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	session, err := r.resolveSession(cmd)
	if err != nil {
		return err
	}

	sheetID := r.resolveSheetID(cmd)
	sheet, err := r.sheetClient(ctx, sheetID)
	if err != nil {
		return err
	}

	engine := tasks.NewEnrichEngine(sheet, r.profileFetcher(), r.config, r.logger)

	opts := tasks.EnrichOpts{
		Session:  session,
		TestMode: cmd.Bool("test"),
		Force:    cmd.Bool("force"),
	}

	result, err := engine.Run(ctx, nil, opts)
	if err != nil {
		return err
	}

	r.writePlain("Rows visited: %d\nUpdated: %d\nSkipped: %d\nNo data: %d\nFailed: %d\n",
		result.Total, result.Updated, result.Skipped, result.NoData, result.Failed)

	if format := cmd.String("report"); format != "" {
		path := cmd.String("output")
		if path == "" {
			path = fmt.Sprintf("enrich_report_%s.%s", result.RunID, reportExt(format))
		}
		written, err := formatter.WriteReport(result, format, path)
		if err != nil {
			return err
		}
		r.writePlain("Report written to %s\n", written)
	}

	return nil
}

// EnrichTUI runs the enrichment loop behind the interactive TUI.
func (r *Runner) EnrichTUI(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	session, err := r.resolveSession(cmd)
	if err != nil {
		return err
	}

	sheetID := r.resolveSheetID(cmd)
	sheet, err := r.sheetClient(ctx, sheetID)
	if err != nil {
		return err
	}

	engine := tasks.NewEnrichEngine(sheet, r.profileFetcher(), r.config, r.logger)

	opts := tasks.EnrichOpts{
		Session:  session,
		TestMode: cmd.Bool("test"),
		Force:    cmd.Bool("force"),
	}

	model := ui.NewModel(ctx, engine, sheetID, opts)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// SheetShow dumps the fetched rows for debugging.
func (r *Runner) SheetShow(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	sheet, err := r.sheetClient(ctx, r.resolveSheetID(cmd))
	if err != nil {
		return err
	}

	rows, err := sheet.ReadRows(ctx, r.config.Sheet.ReadRange())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	if len(rows) == 0 {
		return r.writePlain("No usernames found in spreadsheet\n")
	}

	for i, row := range rows {
		name := row.Username()
		if name == "" {
			name = "(empty)"
		}
		r.writePlain("%d. %s", r.config.Sheet.FirstDataRow+i, name)
		if offset, err := r.config.Sheet.EnrichedOffset(); err == nil && row.Enriched(offset) {
			r.writePlain(" [enriched]")
		}
		r.writePlain("\n")
	}

	return nil
}

// SetupConfig writes config.toml from the embedded example.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Infof("wrote %s", path)
	return r.writePlain("✓ Config created at %s\n", path)
}

func reportExt(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "text", "txt":
		return "txt"
	default:
		return "json"
	}
}
