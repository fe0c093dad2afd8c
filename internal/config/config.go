// Package config manages stallkit settings from ~/.stallkit/config.yaml, a local
// .env file and STALLKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STALLKIT_OUTPUT_DIR.
const EnvPrefix = "STALLKIT"

// Config holds the resolved settings.
type Config struct {
	OutputDir    string `mapstructure:"output_dir" json:"output_dir"`
	Sheet        string `mapstructure:"sheet" json:"sheet"`
	FallbackName string `mapstructure:"fallback_name" json:"fallback_name"`
	Sanitize     struct {
		PreserveUnderscoreRuns bool `mapstructure:"preserve_underscore_runs" json:"preserve_underscore_runs"`
	} `mapstructure:"sanitize" json:"sanitize"`
	Log struct {
		Level  string `mapstructure:"level" json:"level"`
		Format string `mapstructure:"format" json:"format"`
	} `mapstructure:"log" json:"log"`
	Output struct {
		Color bool `mapstructure:"color" json:"color"`
	} `mapstructure:"output" json:"output"`
}

// boolKeys are the settings Set parses as booleans.
var boolKeys = []string{
	"sanitize.preserve_underscore_runs",
	"output.color",
}

// Keys lists every setting `config get/set` accepts, in display order.
var Keys = []string{
	"output_dir",
	"sheet",
	"fallback_name",
	"sanitize.preserve_underscore_runs",
	"log.level",
	"log.format",
	"output.color",
}

// Load reads the config file and environment into the global viper instance.
// A missing config file or .env file is not an error.
func Load() (*Config, error) {
	// .env values only fill variables that are not already exported.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read %s: %w", ConfigPath(), err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid value in %s: %w", ConfigPath(), err)
	}
	return &cfg, nil
}

// Defaults returns the built-in settings, ignoring the config file and environment.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// The defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "output")
	v.SetDefault("sheet", "")
	v.SetDefault("fallback_name", "uncategorized")
	v.SetDefault("sanitize.preserve_underscore_runs", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("output.color", true)
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stallkit"
	}
	return filepath.Join(home, ".stallkit")
}
