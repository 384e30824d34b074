package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Dashboard sources.
const (
	SourceCSV      = "csv"
	SourceDatabase = "database"
)

// Config struct to hold the configuration settings
type Config struct {
	Ingest IngestConfig `yaml:"ingest"`
	// Aliases maps chat display names to canonical player names.
	Aliases       map[string]string   `yaml:"aliases"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Server        ServerConfig        `yaml:"server"`
	Dashboard     DashboardConfig     `yaml:"dashboard"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// IngestConfig holds the dataset build inputs and parsing options.
type IngestConfig struct {
	ChatLog          string   `yaml:"chat_log"`
	Answers          string   `yaml:"answers"`
	Output           string   `yaml:"output"`
	XLSXOutput       string   `yaml:"xlsx_output"`
	GameLabel        string   `yaml:"game_label"`
	KeywordSuffix    string   `yaml:"keyword_suffix"`
	Timezone         string   `yaml:"timezone"`
	TimestampLayouts []string `yaml:"timestamp_layouts"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// ServerConfig holds the dashboard HTTP server settings.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DashboardConfig selects the dashboard dataset and the rows it summarizes.
type DashboardConfig struct {
	Source           string   `yaml:"source"`
	MaxPuzzle        int      `yaml:"max_puzzle"`
	ExcludePuzzles   []int    `yaml:"exclude_puzzles"`
	Players          []string `yaml:"players"`
	RequireFullSlate bool     `yaml:"require_full_slate"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // text|json
	ServiceName    string `yaml:"service_name"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	// OTLPEndpoint is the trace collector (host:port); empty disables export.
	OTLPEndpoint    string  `yaml:"otlp_endpoint"`
	OTLPInsecure    bool    `yaml:"otlp_insecure"`
	TraceSampleRate float64 `yaml:"trace_sample_rate"`
}

// Defaults returns the configuration used when neither file nor environment
// set a value.
func Defaults() Config {
	return Config{
		Ingest: IngestConfig{
			Output:        "wordle_dataset.csv",
			GameLabel:     "Wordle",
			KeywordSuffix: "ordle",
			Timezone:      "UTC",
		},
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Dashboard: DashboardConfig{
			Source: SourceCSV,
		},
		Observability: ObservabilityConfig{
			LogLevel:        "info",
			LogFormat:       "text",
			ServiceName:     "wordle-bot",
			MetricsEnabled:  true,
			TraceSampleRate: 1,
		},
	}
}

// LoadConfig loads the configuration from a YAML file. A missing file leaves
// the defaults in place; environment variables override either.
func LoadConfig(filename string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv overrides cfg with any environment variables that are set.
func applyEnv(cfg *Config) {
	if v := os.Getenv("WORDLE_CHAT_LOG"); v != "" {
		cfg.Ingest.ChatLog = v
	}
	if v := os.Getenv("WORDLE_ANSWERS"); v != "" {
		cfg.Ingest.Answers = v
	}
	if v := os.Getenv("WORDLE_OUTPUT"); v != "" {
		cfg.Ingest.Output = v
	}
	if v := os.Getenv("WORDLE_GAME_LABEL"); v != "" {
		cfg.Ingest.GameLabel = v
	}
	if v := os.Getenv("WORDLE_TIMEZONE"); v != "" {
		cfg.Ingest.Timezone = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("WORDLE_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("WORDLE_DASHBOARD_SOURCE"); v != "" {
		cfg.Dashboard.Source = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_INSECURE"); v != "" {
		cfg.Observability.OTLPInsecure = v == "true"
	}
	if v := os.Getenv("TRACE_SAMPLE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Observability.TraceSampleRate = f
		}
	}
}

// Validate reports settings that no command can run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Ingest.GameLabel) == "" {
		errs = append(errs, errors.New("ingest.game_label must not be empty"))
	}
	if _, err := time.LoadLocation(c.Ingest.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("ingest.timezone: %w", err))
	}
	switch c.Dashboard.Source {
	case SourceCSV, SourceDatabase:
	default:
		errs = append(errs, fmt.Errorf("dashboard.source must be %q or %q, got %q", SourceCSV, SourceDatabase, c.Dashboard.Source))
	}
	if c.Dashboard.MaxPuzzle < 0 {
		errs = append(errs, errors.New("dashboard.max_puzzle must not be negative"))
	}
	if r := c.Observability.TraceSampleRate; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("observability.trace_sample_rate must be within [0, 1], got %v", r))
	}
	switch strings.ToLower(c.Observability.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("observability.log_format must be text or json, got %q", c.Observability.LogFormat))
	}
	return errors.Join(errs...)
}

// ValidateBuild additionally requires every path a dataset build reads or
// writes.
func (c *Config) ValidateBuild() error {
	var errs []error
	if c.Ingest.ChatLog == "" {
		errs = append(errs, errors.New("ingest.chat_log is required"))
	}
	if c.Ingest.Answers == "" {
		errs = append(errs, errors.New("ingest.answers is required"))
	}
	if c.Ingest.Output == "" {
		errs = append(errs, errors.New("ingest.output is required"))
	}
	return errors.Join(append([]error{c.Validate()}, errs...)...)
}

// Location returns the time zone chat timestamps are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Ingest.Timezone)
}
