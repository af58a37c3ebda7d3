package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Sheet.UsernameColumn != "B" {
			t.Errorf("expected username column B, got %s", config.Sheet.UsernameColumn)
		}
		if config.Sheet.OutputStartColumn != "G" || config.Sheet.OutputEndColumn != "S" {
			t.Errorf("expected output columns G..S, got %s..%s",
				config.Sheet.OutputStartColumn, config.Sheet.OutputEndColumn)
		}
		if config.Sheet.FirstDataRow != 2 || config.Sheet.LastDataRow != 100 {
			t.Errorf("expected data rows 2..100, got %d..%d",
				config.Sheet.FirstDataRow, config.Sheet.LastDataRow)
		}
		if config.Lookup.Tool != "toutatis" {
			t.Errorf("expected lookup tool toutatis, got %s", config.Lookup.Tool)
		}
		if config.Rate.RequestDelay() != 30*time.Second {
			t.Errorf("expected 30s request delay, got %s", config.Rate.RequestDelay())
		}
		if config.Rate.BatchSize != 10 {
			t.Errorf("expected batch size 10, got %d", config.Rate.BatchSize)
		}
		if config.Rate.BatchDelay() != 5*time.Minute {
			t.Errorf("expected 5m batch delay, got %s", config.Rate.BatchDelay())
		}
		if config.Rate.WriteDelay() != 2*time.Second {
			t.Errorf("expected 2s write delay, got %s", config.Rate.WriteDelay())
		}
	})

	t.Run("ReadRange spans usernames through last output column", func(t *testing.T) {
		config := DefaultConfig()
		if got := config.Sheet.ReadRange(); got != "B2:S100" {
			t.Errorf("expected B2:S100, got %s", got)
		}
	})

	t.Run("WriteRange targets one row", func(t *testing.T) {
		config := DefaultConfig()
		if got := config.Sheet.WriteRange(7); got != "G7:S7" {
			t.Errorf("expected G7:S7, got %s", got)
		}
	})

	t.Run("EnrichedOffset for default layout", func(t *testing.T) {
		config := DefaultConfig()
		offset, err := config.Sheet.EnrichedOffset()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if offset != 5 {
			t.Errorf("expected offset 5 for B..G, got %d", offset)
		}
	})

	t.Run("EnrichedOffset rejects inverted layout", func(t *testing.T) {
		sheet := SheetConfig{UsernameColumn: "G", OutputStartColumn: "B"}
		if _, err := sheet.EnrichedOffset(); err == nil {
			t.Error("expected error for output column before username column")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Sheet.SpreadsheetID != defaultConfig.Sheet.SpreadsheetID {
			t.Errorf("created config spreadsheet id doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[sheet]
spreadsheet_id = "custom-sheet"
username_column = "A"
output_start_column = "C"
output_end_column = "F"
first_data_row = 3
last_data_row = 50

[lookup]
tool = "/usr/local/bin/toutatis"
timeout_seconds = 60

[rate]
request_delay_seconds = 1
batch_size = 2
batch_delay_seconds = 3
write_delay_seconds = 0
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Sheet.SpreadsheetID != "custom-sheet" {
			t.Errorf("expected spreadsheet id custom-sheet, got %s", config.Sheet.SpreadsheetID)
		}
		if config.Sheet.ReadRange() != "A3:F50" {
			t.Errorf("expected read range A3:F50, got %s", config.Sheet.ReadRange())
		}
		if config.Lookup.TimeoutDuration() != time.Minute {
			t.Errorf("expected 60s timeout, got %s", config.Lookup.TimeoutDuration())
		}
		if config.Rate.BatchSize != 2 {
			t.Errorf("expected batch size 2, got %d", config.Rate.BatchSize)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
