package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mpago/go-mpago/mercadopago"
)

// Load loads the configuration from file and environment. A config file
// is optional: the access token alone, supplied through
// MERCADOPAGO_ACCESS_TOKEN or a .env file, is enough to run.
func Load(configPath string) (*Config, error) {
	// A .env file in the working directory feeds the environment
	// lookups below. Missing files are fine.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("MERCADOPAGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("mercadopago.access_token", "MERCADOPAGO_ACCESS_TOKEN"); err != nil {
		return nil, fmt.Errorf("binding environment: %w", err)
	}
	if err := v.BindEnv("mercadopago.webhook_secret", "MERCADOPAGO_WEBHOOK_SECRET"); err != nil {
		return nil, fmt.Errorf("binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".mpago"))
		}

		v.AddConfigPath("/etc/mpago/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		// No config file; environment and defaults carry the run.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("mercadopago.base_url", mercadopago.DefaultBaseURL)
	v.SetDefault("mercadopago.timeout_secs", 30)

	// Safety defaults
	v.SetDefault("safety.dry_run", true)
	v.SetDefault("safety.confirm_cancel", true)
	v.SetDefault("safety.show_details", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.MercadoPago.AccessToken == "" || cfg.MercadoPago.AccessToken == "your-access-token-here" {
		return fmt.Errorf("mercadopago.access_token must be set to a valid access token")
	}

	if cfg.MercadoPago.TimeoutSecs <= 0 {
		return fmt.Errorf("mercadopago.timeout_secs must be positive")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
