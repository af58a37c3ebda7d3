package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Sheet  SheetConfig  `toml:"sheet"`
	Lookup LookupConfig `toml:"lookup"`
	Rate   RateConfig   `toml:"rate"`
}

// SheetConfig describes the spreadsheet layout the enricher reads and writes.
//
// Usernames live in UsernameColumn; the thirteen enrichment columns span
// OutputStartColumn through OutputEndColumn on the same row.
type SheetConfig struct {
	SpreadsheetID     string `toml:"spreadsheet_id"`
	UsernameColumn    string `toml:"username_column"`
	OutputStartColumn string `toml:"output_start_column"`
	OutputEndColumn   string `toml:"output_end_column"`
	FirstDataRow      int    `toml:"first_data_row"`
	LastDataRow       int    `toml:"last_data_row"`
}

// LookupConfig contains settings for the external profile lookup tool.
type LookupConfig struct {
	Tool    string `toml:"tool"`
	Timeout int    `toml:"timeout_seconds"`
}

// TimeoutDuration returns the subprocess timeout; zero means no timeout, trusting
// the external tool's own behavior.
func (l LookupConfig) TimeoutDuration() time.Duration {
	return time.Duration(l.Timeout) * time.Second
}

// RateConfig contains the fixed throttling parameters for a run.
//
// No jitter and no adaptive backoff: the delays are deliberate constants that mirror
// what the remote service tolerates.
type RateConfig struct {
	RequestDelaySeconds int `toml:"request_delay_seconds"`
	BatchSize           int `toml:"batch_size"`
	BatchDelaySeconds   int `toml:"batch_delay_seconds"`
	WriteDelaySeconds   int `toml:"write_delay_seconds"`
}

// RequestDelay returns the pause taken before every profile fetch.
func (r RateConfig) RequestDelay() time.Duration {
	return time.Duration(r.RequestDelaySeconds) * time.Second
}

// BatchDelay returns the longer pause taken after every BatchSize rows.
func (r RateConfig) BatchDelay() time.Duration {
	return time.Duration(r.BatchDelaySeconds) * time.Second
}

// WriteDelay returns the pause taken after each successful row update.
func (r RateConfig) WriteDelay() time.Duration {
	return time.Duration(r.WriteDelaySeconds) * time.Second
}

// ReadRange returns the A1 range covering the username column through the last
// output column for all data rows, e.g. "B2:S100".
func (s SheetConfig) ReadRange() string {
	return fmt.Sprintf("%s%d:%s%d", s.UsernameColumn, s.FirstDataRow, s.OutputEndColumn, s.LastDataRow)
}

// WriteRange returns the A1 range for the enrichment columns of a single row,
// e.g. "G4:S4". rowIndex is the 1-based sheet row.
func (s SheetConfig) WriteRange(rowIndex int) string {
	return fmt.Sprintf("%s%d:%s%d", s.OutputStartColumn, rowIndex, s.OutputEndColumn, rowIndex)
}

// EnrichedOffset returns the index within a fetched row at which the enrichment
// columns begin. Fetched rows start at UsernameColumn, so for B..G this is 5.
func (s SheetConfig) EnrichedOffset() (int, error) {
	user, err := ColumnIndex(s.UsernameColumn)
	if err != nil {
		return 0, err
	}
	out, err := ColumnIndex(s.OutputStartColumn)
	if err != nil {
		return 0, err
	}
	if out <= user {
		return 0, fmt.Errorf("%w: output column %s not after username column %s",
			ErrInvalidConfig, s.OutputStartColumn, s.UsernameColumn)
	}
	return out - user, nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
