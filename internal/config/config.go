// Package config loads service configuration from an optional TOML file and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all settings for both binaries.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	WhatsApp WhatsAppConfig
	Storage  StorageConfig
	Printer  PrinterConfig
	Log      LogConfig
}

// AppConfig holds application-wide settings.
type AppConfig struct {
	Name       string
	Env        string
	BaseURL    string // public URL the chat links point at
	PaymentVPA string // UPI collect address on payment references
}

// HTTPConfig holds intake server settings.
type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// WhatsAppConfig holds Graph API credentials.
type WhatsAppConfig struct {
	PhoneNumberID string
	AccessToken   string
	VerifyToken   string
}

// StorageConfig holds the on-disk layout shared by both binaries.
type StorageConfig struct {
	BaseDir    string // spool root: orders/ and printed/ live under it
	UploadsDir string
}

// PrinterConfig holds dispatch settings.
type PrinterConfig struct {
	Name        string
	SumatraPath string
	SettleDelay time.Duration
	RetryDelay  time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load reads configuration with the usual priority: environment variables
// with the XEROX_ prefix, then config.toml, then built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/xerox-automation")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("XEROX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:       v.GetString("app.name"),
			Env:        v.GetString("app.env"),
			BaseURL:    v.GetString("app.base_url"),
			PaymentVPA: v.GetString("app.payment_vpa"),
		},
		HTTP: HTTPConfig{
			Port:         v.GetString("http.port"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			CORSOrigins:  v.GetStringSlice("http.cors_origins"),
		},
		WhatsApp: WhatsAppConfig{
			PhoneNumberID: v.GetString("whatsapp.phone_number_id"),
			AccessToken:   v.GetString("whatsapp.access_token"),
			VerifyToken:   v.GetString("whatsapp.verify_token"),
		},
		Storage: StorageConfig{
			BaseDir:    v.GetString("storage.base_dir"),
			UploadsDir: v.GetString("storage.uploads_dir"),
		},
		Printer: PrinterConfig{
			Name:        v.GetString("printer.name"),
			SumatraPath: v.GetString("printer.sumatra_path"),
			SettleDelay: v.GetDuration("printer.settle_delay"),
			RetryDelay:  v.GetDuration("printer.retry_delay"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "xerox-automation")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.payment_vpa", "printshop@upi")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.cors_origins", []string{"*"})

	v.SetDefault("storage.base_dir", "data")
	v.SetDefault("storage.uploads_dir", "data/uploads")

	v.SetDefault("printer.settle_delay", 2*time.Second)
	v.SetDefault("printer.retry_delay", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func (c *Config) validate() error {
	if c.HTTP.Port == "" {
		return fmt.Errorf("http.port must not be empty")
	}
	if c.Storage.BaseDir == "" || c.Storage.UploadsDir == "" {
		return fmt.Errorf("storage.base_dir and storage.uploads_dir must not be empty")
	}
	return nil
}
