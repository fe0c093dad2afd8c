package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points HOME and the working directory at fresh temp dirs so
// neither a real config file nor a real .env leaks in.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))

	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		_ = os.Chdir(wd)
	})
	return home
}

func TestLoadDefaults(t *testing.T) {
	setupTestConfig(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "", cfg.Sheet)
	assert.Equal(t, "uncategorized", cfg.FallbackName)
	assert.False(t, cfg.Sanitize.PreserveUnderscoreRuns)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Output.Color)
}

func TestLoadEnvOverrides(t *testing.T) {
	setupTestConfig(t)
	t.Setenv("STALLKIT_OUTPUT_DIR", "/tmp/listings")
	t.Setenv("STALLKIT_SANITIZE_PRESERVE_UNDERSCORE_RUNS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/listings", cfg.OutputDir)
	assert.True(t, cfg.Sanitize.PreserveUnderscoreRuns)
}

func TestLoadDotEnv(t *testing.T) {
	setupTestConfig(t)
	t.Setenv("STALLKIT_FALLBACK_NAME", "")
	require.NoError(t, os.Unsetenv("STALLKIT_FALLBACK_NAME"))
	require.NoError(t, os.WriteFile(".env", []byte("STALLKIT_FALLBACK_NAME=misc\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "misc", cfg.FallbackName)
}

func TestLoadConfigFile(t *testing.T) {
	home := setupTestConfig(t)
	dir := filepath.Join(home, ".stallkit")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("sheet: Stalls\nlog:\n  level: debug\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Stalls", cfg.Sheet)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestSetAndGet(t *testing.T) {
	setupTestConfig(t)
	_, err := Load()
	require.NoError(t, err)

	require.NoError(t, Set("output_dir", "listings"))
	assert.Equal(t, "listings", Get("output_dir"))
	assert.FileExists(t, ConfigPath())

	assert.ErrorContains(t, Set("provider", "anthropic"), "unknown config key")
}

func TestResetConfig(t *testing.T) {
	setupTestConfig(t)
	_, err := Load()
	require.NoError(t, err)
	require.NoError(t, Set("fallback_name", "other"))

	require.NoError(t, ResetConfig())
	assert.Equal(t, "uncategorized", Get("fallback_name"))
	assert.NoFileExists(t, ConfigPath())
}

func TestShowConfig(t *testing.T) {
	setupTestConfig(t)
	_, err := Load()
	require.NoError(t, err)

	out := ShowConfig()
	assert.Contains(t, out, ConfigPath())
	for _, key := range Keys {
		assert.Contains(t, out, key+":")
	}
	assert.Contains(t, out, "uncategorized")
}

func TestConfigPath(t *testing.T) {
	home := setupTestConfig(t)
	assert.Equal(t, filepath.Join(home, ".stallkit", "config.yaml"), ConfigPath())
}

func TestValidate(t *testing.T) {
	setupTestConfig(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, Validate(cfg))

	cfg.FallbackName = "***"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	issues := Validate(cfg)
	require.Len(t, issues, 3)
	assert.Equal(t, "fallback_name", issues[0].Key)
	assert.Equal(t, "log.level", issues[1].Key)
	assert.Equal(t, "log.format", issues[2].Key)
	for _, issue := range issues {
		assert.Equal(t, "error", issue.Severity)
	}
}

func TestValidateFallbackRewritten(t *testing.T) {
	setupTestConfig(t)
	cfg, err := Load()
	require.NoError(t, err)

	cfg.FallbackName = "Other Stuff"
	issues := Validate(cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "warning", issues[0].Severity)
	assert.Contains(t, issues[0].Message, `"otherstuff"`)
}

func TestToEnv(t *testing.T) {
	setupTestConfig(t)
	_, err := Load()
	require.NoError(t, err)

	env := ToEnv()
	assert.Len(t, env, len(Keys))
	assert.Equal(t, "uncategorized", env["STALLKIT_FALLBACK_NAME"])
	assert.Equal(t, "false", env["STALLKIT_SANITIZE_PRESERVE_UNDERSCORE_RUNS"])

	lines := SortedEnv()
	assert.Equal(t, "STALLKIT_FALLBACK_NAME=uncategorized", lines[0])
}

func TestSetBoolKeys(t *testing.T) {
	setupTestConfig(t)
	_, err := Load()
	require.NoError(t, err)

	err = Set("output.color", "yes")
	assert.ErrorContains(t, err, "output.color expects true or false")
	assert.NoFileExists(t, ConfigPath())

	require.NoError(t, Set("output.color", "false"))
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Output.Color)
}

func TestLoadMalformedConfig(t *testing.T) {
	home := setupTestConfig(t)
	dir := filepath.Join(home, ".stallkit")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed\n"), 0644))

	_, err := Load()
	assert.ErrorContains(t, err, "could not read")
}

func TestLoadInvalidValue(t *testing.T) {
	home := setupTestConfig(t)
	dir := filepath.Join(home, ".stallkit")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output:\n  color: yes please\n"), 0644))

	_, err := Load()
	assert.ErrorContains(t, err, "invalid value")
}

func TestDefaults(t *testing.T) {
	setupTestConfig(t)
	t.Setenv("STALLKIT_OUTPUT_DIR", "ignored")

	cfg := Defaults()
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Output.Color)
}
