package config

// Config represents the complete configuration structure
type Config struct {
	MercadoPago MercadoPagoConfig `mapstructure:"mercadopago"`
	Filter      FilterConfig      `mapstructure:"filter"`
	Safety      SafetyConfig      `mapstructure:"safety"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// MercadoPagoConfig holds the API credentials and connection details
type MercadoPagoConfig struct {
	AccessToken   string `mapstructure:"access_token"`
	BaseURL       string `mapstructure:"base_url"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string

// SafetyConfig contains safety-related settings for mutating commands
type SafetyConfig struct {
	DryRun        bool `mapstructure:"dry_run"`
	ConfirmCancel bool `mapstructure:"confirm_cancel"`
	ShowDetails   bool `mapstructure:"show_details"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
