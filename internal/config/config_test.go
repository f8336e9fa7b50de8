package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-ricrob/almanac/internal/almanac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"ALMANAC_WORKERS",
	"ALMANAC_MAX_REFINE_PASSES",
	"ALMANAC_LOG_LEVEL",
	"ALMANAC_LOG_FORMAT",
}

// clearEnvVars unsets every ALMANAC_ variable for the duration of the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		if v, ok := os.LookupEnv(name); ok {
			require.NoError(t, os.Unsetenv(name))
			t.Cleanup(func() { _ = os.Setenv(name, v) })
		}
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefaultRefinePassesFollowSolver(t *testing.T) {
	assert.Equal(t, almanac.DefaultMaxRefinePasses, Default().MaxRefinePasses)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnvVars(t)

	yamlPath := writeFile(t, "almanac.yaml", "workers: 3\nmax_refine_passes: 50\nlog_level: debug\n")

	cfg, err := Load(yamlPath, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 50, cfg.MaxRefinePasses)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, LogFormatConsole, cfg.LogFormat)

	t.Setenv("ALMANAC_WORKERS", "8")
	cfg, err = Load(yamlPath, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 50, cfg.MaxRefinePasses)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnvVars(t)
	// godotenv sets real environment variables; register them for cleanup
	t.Setenv("ALMANAC_LOG_FORMAT", "")
	require.NoError(t, os.Unsetenv("ALMANAC_LOG_FORMAT"))

	envFile := writeFile(t, "test.env", "ALMANAC_LOG_FORMAT=json\n")
	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	clearEnvVars(t)
	noEnv := filepath.Join(t.TempDir(), "missing.env")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "workers: [1"), noEnv)
	assert.Error(t, err)

	_, err = Load(writeFile(t, "neg.yaml", "workers: -1\n"), noEnv)
	assert.ErrorIs(t, err, ErrInvalid)

	t.Setenv("ALMANAC_MAX_REFINE_PASSES", "0")
	_, err = Load("", noEnv)
	assert.ErrorIs(t, err, ErrInvalid)

	t.Setenv("ALMANAC_MAX_REFINE_PASSES", "ten")
	_, err = Load("", noEnv)
	assert.Error(t, err)
}

func TestValidateLogFormat(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}
