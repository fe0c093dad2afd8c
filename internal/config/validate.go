package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/klytics/stallkit/internal/sanitize"
)

// Issue is one problem found by Validate.
type Issue struct {
	Key      string `json:"key"`
	Severity string `json:"severity"` // "error" or "warning"
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the resolved settings. An empty slice means the config is usable.
func Validate(cfg *Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(cfg.OutputDir) == "" {
		issues = append(issues, Issue{
			Key:      "output_dir",
			Severity: "error",
			Message:  "output_dir is empty",
			Fix:      "stallkit config set output_dir output",
		})
	}

	stem := sanitize.Options{PreserveUnderscoreRuns: cfg.Sanitize.PreserveUnderscoreRuns}.Filename(cfg.FallbackName)
	switch {
	case stem == "":
		issues = append(issues, Issue{
			Key:      "fallback_name",
			Severity: "error",
			Message:  fmt.Sprintf("fallback_name %q is empty after sanitizing", cfg.FallbackName),
			Fix:      "stallkit config set fallback_name uncategorized",
		})
	case stem != cfg.FallbackName:
		issues = append(issues, Issue{
			Key:      "fallback_name",
			Severity: "warning",
			Message:  fmt.Sprintf("fallback_name %q will be written as %q", cfg.FallbackName, stem),
		})
	}

	if !contains(logLevels, cfg.Log.Level) {
		issues = append(issues, Issue{
			Key:      "log.level",
			Severity: "error",
			Message:  fmt.Sprintf("unknown log level %q, expected one of %s", cfg.Log.Level, strings.Join(logLevels, ", ")),
			Fix:      "stallkit config set log.level info",
		})
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		issues = append(issues, Issue{
			Key:      "log.format",
			Severity: "error",
			Message:  fmt.Sprintf("unknown log format %q, expected console or json", cfg.Log.Format),
			Fix:      "stallkit config set log.format console",
		})
	}

	return issues
}

// ToEnv returns every setting as the environment variable that overrides it.
func ToEnv() map[string]string {
	env := make(map[string]string, len(Keys))
	for _, key := range Keys {
		env[EnvName(key)] = viper.GetString(key)
	}
	return env
}

// EnvName maps a config key to its environment variable, e.g.
// log.level to STALLKIT_LOG_LEVEL.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// SortedEnv returns ToEnv as KEY=value lines in key order.
func SortedEnv() []string {
	env := ToEnv()
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+"="+env[name])
	}
	return lines
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
