package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// LoadSettings reads user settings from path, or ~/.province/settings.yaml
// when path is empty. A missing default file is not an error. Environment
// variables PROVINCE_DB, PROVINCE_SEED, PROVINCE_LOG_LEVEL, PROVINCE_LOG_FILE
// and PROVINCE_PRESETS override the file.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("PROVINCE")
	v.AutomaticEnv()

	dir := Dir()
	v.SetDefault("db", filepath.Join(dir, "province.db"))
	v.SetDefault("seed", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(dir, "province.log"))
	v.SetDefault("presets", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	} else if dir != "" {
		v.SetConfigName("settings")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("failed to read settings: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}
