package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	errs "github.com/edgard/aibridge/internal/errors"
)

// ErrMissingToken is returned when no Discord bot token is configured.
var ErrMissingToken = errs.NewConfigError("DISCORD_BOT_TOKEN not found in environment variables", nil)

// Load loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path, or ./config.yaml when path is empty and it exists
// 3. BRIDGE_* environment variables and the conventional provider variables
func Load(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envAliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, errs.NewConfigError("failed to bind environment variables for "+key, err)
		}
	}

	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.NewConfigError("failed to parse config", err)
	}

	if strings.TrimSpace(cfg.Discord.Token) == "" {
		return nil, ErrMissingToken
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, errs.NewConfigError("invalid configuration", err)
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errs.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errs.NewConfigError("failed to read config file", err)
		}
		slog.Debug("No config file found, using defaults and environment")
	}
	return nil
}
