package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Set stores a value and saves the config file.
func Set(key, value string) error {
	if !known(key) {
		return fmt.Errorf("unknown config key %q, valid keys: %s", key, strings.Join(Keys, ", "))
	}
	if contains(boolKeys, key) {
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		viper.Set(key, b)
		return SaveConfig()
	}
	viper.Set(key, value)
	return SaveConfig()
}

// Get returns the resolved value of key.
func Get(key string) string {
	return viper.GetString(key)
}

// SaveConfig writes the current settings to ~/.stallkit/config.yaml.
func SaveConfig() error {
	if err := os.MkdirAll(configDir(), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(ConfigPath()); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// ResetConfig deletes the config file and reloads defaults and environment.
func ResetConfig() error {
	if err := os.Remove(ConfigPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete config: %w", err)
	}
	viper.Reset()
	_, err := Load()
	return err
}

// ConfigPath returns the location of the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// ShowConfig renders every known key with its resolved value.
func ShowConfig() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config: %s\n\n", ConfigPath()))
	for _, key := range Keys {
		sb.WriteString(fmt.Sprintf("  %-34s %s\n", key+":", viper.GetString(key)))
	}
	return sb.String()
}

func known(key string) bool {
	return contains(Keys, key)
}
