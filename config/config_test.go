package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
ingest:
  chat_log: chat.txt
  answers: answers.xlsx
  output: out/dataset.csv
  timezone: America/New_York
  timestamp_layouts:
    - "1/2/06 3:04 PM"
aliases:
  Alice Smith: Player1
  "+1 555 0100": Player2
postgres:
  dsn: postgres://localhost/wordle
server:
  address: ":9090"
  read_timeout: 5s
dashboard:
  max_puzzle: 467
  exclude_puzzles: [421]
  players: [Player1, Player2]
  require_full_slate: true
observability:
  log_format: json
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	require.Equal(t, "chat.txt", cfg.Ingest.ChatLog)
	require.Equal(t, "answers.xlsx", cfg.Ingest.Answers)
	require.Equal(t, "out/dataset.csv", cfg.Ingest.Output)
	require.Equal(t, []string{"1/2/06 3:04 PM"}, cfg.Ingest.TimestampLayouts)
	require.Equal(t, map[string]string{"Alice Smith": "Player1", "+1 555 0100": "Player2"}, cfg.Aliases)
	require.Equal(t, "postgres://localhost/wordle", cfg.Postgres.DSN)
	require.Equal(t, ":9090", cfg.Server.Address)
	require.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 467, cfg.Dashboard.MaxPuzzle)
	require.Equal(t, []int{421}, cfg.Dashboard.ExcludePuzzles)
	require.True(t, cfg.Dashboard.RequireFullSlate)
	require.Equal(t, "json", cfg.Observability.LogFormat)

	// Unset keys keep their defaults.
	require.Equal(t, "Wordle", cfg.Ingest.GameLabel)
	require.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	require.Equal(t, SourceCSV, cfg.Dashboard.Source)
	require.Equal(t, "info", cfg.Observability.LogLevel)

	require.NoError(t, cfg.ValidateBuild())
	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, "America/New_York", loc.String())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	for _, key := range []string{
		"WORDLE_CHAT_LOG", "WORDLE_ANSWERS", "WORDLE_OUTPUT", "WORDLE_GAME_LABEL", "WORDLE_TIMEZONE",
		"DATABASE_URL", "WORDLE_SERVER_ADDRESS", "WORDLE_DASHBOARD_SOURCE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Defaults(), *cfg)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WORDLE_CHAT_LOG", "/data/chat.txt")
	t.Setenv("WORDLE_ANSWERS", "/data/answers.csv")
	t.Setenv("WORDLE_OUTPUT", "/data/out.csv")
	t.Setenv("WORDLE_GAME_LABEL", "Nerdle")
	t.Setenv("WORDLE_TIMEZONE", "Europe/London")
	t.Setenv("DATABASE_URL", "postgres://db/wordle")
	t.Setenv("WORDLE_SERVER_ADDRESS", ":7000")
	t.Setenv("WORDLE_DASHBOARD_SOURCE", SourceDatabase)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	require.Equal(t, "/data/chat.txt", cfg.Ingest.ChatLog)
	require.Equal(t, "/data/answers.csv", cfg.Ingest.Answers)
	require.Equal(t, "/data/out.csv", cfg.Ingest.Output)
	require.Equal(t, "Nerdle", cfg.Ingest.GameLabel)
	require.Equal(t, "Europe/London", cfg.Ingest.Timezone)
	require.Equal(t, "postgres://db/wordle", cfg.Postgres.DSN)
	require.Equal(t, ":7000", cfg.Server.Address)
	require.Equal(t, SourceDatabase, cfg.Dashboard.Source)
	require.Equal(t, "debug", cfg.Observability.LogLevel)
	require.Equal(t, "json", cfg.Observability.LogFormat)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "ingest: [not, a, map"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty game label", mutate: func(c *Config) { c.Ingest.GameLabel = " " }, wantErr: "game_label"},
		{name: "unknown time zone", mutate: func(c *Config) { c.Ingest.Timezone = "Mars/Olympus" }, wantErr: "timezone"},
		{name: "unknown source", mutate: func(c *Config) { c.Dashboard.Source = "s3" }, wantErr: "dashboard.source"},
		{name: "negative max puzzle", mutate: func(c *Config) { c.Dashboard.MaxPuzzle = -1 }, wantErr: "max_puzzle"},
		{name: "unknown log format", mutate: func(c *Config) { c.Observability.LogFormat = "xml" }, wantErr: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateBuild_RequiresPaths(t *testing.T) {
	cfg := Defaults()
	cfg.Ingest.Output = ""

	err := cfg.ValidateBuild()
	require.ErrorContains(t, err, "ingest.chat_log")
	require.ErrorContains(t, err, "ingest.answers")
	require.ErrorContains(t, err, "ingest.output")
}
