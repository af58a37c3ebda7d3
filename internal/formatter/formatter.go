// package formatter renders enrichment run results to various formats (JSON, CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/atredan/sheetgram/internal/shared"
	"github.com/atredan/sheetgram/internal/tasks"
)

// RowReport is the serializable view of a single row outcome.
type RowReport struct {
	Row      int    `json:"row"`
	Username string `json:"username,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// RunReport is the serializable view of a completed run.
type RunReport struct {
	RunID    string      `json:"run_id"`
	Total    int         `json:"total"`
	Updated  int         `json:"updated"`
	Skipped  int         `json:"skipped"`
	NoData   int         `json:"no_data"`
	Failed   int         `json:"failed"`
	Duration string      `json:"duration"`
	Rows     []RowReport `json:"rows"`
}

// NewRunReport converts an [tasks.EnrichResult] into its serializable form.
func NewRunReport(result *tasks.EnrichResult) *RunReport {
	report := &RunReport{
		RunID:    result.RunID,
		Total:    result.Total,
		Updated:  result.Updated,
		Skipped:  result.Skipped,
		NoData:   result.NoData,
		Failed:   result.Failed,
		Duration: result.Duration.String(),
		Rows:     make([]RowReport, 0, len(result.Outcomes)),
	}

	for _, outcome := range result.Outcomes {
		row := RowReport{
			Row:      outcome.Index,
			Username: outcome.Username,
			Status:   outcome.Status.String(),
		}
		if outcome.Err != nil {
			row.Error = outcome.Err.Error()
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}

// ReportToJSON renders the run report as JSON.
func ReportToJSON(result *tasks.EnrichResult, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(NewRunReport(result), pretty)
}

// ReportToCSV renders the run report as CSV with columns: Row, Username, Status, Error
func ReportToCSV(result *tasks.EnrichResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Row", "Username", "Status", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range NewRunReport(result).Rows {
		record := []string{
			strconv.Itoa(row.Row),
			row.Username,
			row.Status,
			row.Error,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToText renders the run report as plain text.
func ReportToText(result *tasks.EnrichResult) ([]byte, error) {
	var buf bytes.Buffer
	report := NewRunReport(result)

	buf.WriteString(fmt.Sprintf("Run: %s\n", report.RunID))
	buf.WriteString(fmt.Sprintf("Rows visited: %d\n", report.Total))
	buf.WriteString(fmt.Sprintf("Updated: %d  Skipped: %d  No data: %d  Failed: %d\n", report.Updated, report.Skipped, report.NoData, report.Failed))
	buf.WriteString(fmt.Sprintf("Duration: %s\n\n", report.Duration))

	for _, row := range report.Rows {
		name := row.Username
		if name == "" {
			name = "(empty)"
		}
		buf.WriteString(fmt.Sprintf("%d. %s: %s", row.Row, name, row.Status))
		if row.Error != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", row.Error))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// WriteReport renders the result in the given format ("json", "csv", "text") and
// writes it to path. Returns the written path.
func WriteReport(result *tasks.EnrichResult, format, path string) (string, error) {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ReportToCSV(result)
	case "text", "txt":
		data, err = ReportToText(result)
	case "json", "":
		data, err = ReportToJSON(result, true)
	default:
		return "", fmt.Errorf("%w: unknown report format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
