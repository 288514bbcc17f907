package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "wordlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// inEmptyDir runs the test from a directory without a default config file.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "wordlist.db", cfg.Database.Path)
	assert.False(t, cfg.Database.InMemory)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.CSV.LenientTypes)
	assert.Equal(t, 4, cfg.Quiz.Options)
	assert.Equal(t, 4, cfg.Harvest.Workers)
	assert.Equal(t, 30*time.Second, cfg.Harvest.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Harvest.MaxBodyBytes)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := inEmptyDir(t)
	path := writeYAML(t, dir, `
database:
  path: "/tmp/words.db"
log:
  level: "debug"
  format: "json"
csv:
  lenient_types: true
quiz:
  options: 6
harvest:
  workers: 2
  timeout: "5s"
`)
	t.Setenv("QUIZ_OPTIONS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/words.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.CSV.LenientTypes)
	assert.Equal(t, 3, cfg.Quiz.Options, "env wins over yaml")
	assert.Equal(t, 2, cfg.Harvest.Workers)
	assert.Equal(t, 5*time.Second, cfg.Harvest.Timeout)
}

func TestLoadDefaultFileInWorkingDir(t *testing.T) {
	dir := inEmptyDir(t)
	writeYAML(t, dir, "database:\n  in_memory: true\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Database.InMemory)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := inEmptyDir(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvDatabasePath(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("WORDLIST_DB", "/data/vocab.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/vocab.db", cfg.Database.Path)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{Path: "w.db"},
			Log:      LogConfig{Level: "info", Format: "text"},
			Quiz:     QuizConfig{Options: 4},
			Harvest:  HarvestConfig{Workers: 1, Timeout: time.Second, MaxBodyBytes: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"in memory without path", func(c *Config) { c.Database.Path = ""; c.Database.InMemory = true }, ""},
		{"missing path", func(c *Config) { c.Database.Path = " " }, "database.path"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"too few options", func(c *Config) { c.Quiz.Options = 1 }, "quiz.options"},
		{"no workers", func(c *Config) { c.Harvest.Workers = 0 }, "harvest: workers"},
		{"no timeout", func(c *Config) { c.Harvest.Timeout = 0 }, "harvest: timeout"},
		{"no body limit", func(c *Config) { c.Harvest.MaxBodyBytes = 0 }, "harvest: max_body_bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
