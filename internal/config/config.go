// Package config provides configuration loading and validation for the careers service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/careers-portal/internal/schemas"
)

// Identity provider names.
const (
	IdentityLocal  = "local"
	IdentityGoTrue = "gotrue"
)

// Mail provider names.
const (
	MailLog      = "log"
	MailSMTP     = "smtp"
	MailMailgun  = "mailgun"
	MailSendGrid = "sendgrid"
)

// Config is the service configuration. Values come from defaults, then an
// optional JSON file, then environment variables.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	Env         string `json:"env,omitempty"`       // "production" enables secure cookies and JSON logs
	LogLevel    string `json:"log_level,omitempty"` // logrus level name
	CORSOrigin  string `json:"cors_origin,omitempty"`

	Identity IdentityConfig `json:"identity"`
	Mail     MailConfig     `json:"mail"`
}

// IdentityConfig selects and configures the identity provider.
type IdentityConfig struct {
	Provider     string `json:"provider,omitempty"`
	GoTrueURL    string `json:"gotrue_url,omitempty"`
	GoTrueAPIKey string `json:"gotrue_api_key,omitempty"`
}

// MailConfig selects and configures the outbound mail transport.
type MailConfig struct {
	Provider   string `json:"provider,omitempty"`
	From       string `json:"from,omitempty"`
	FromName   string `json:"from_name,omitempty"`
	StaffEmail string `json:"staff_email,omitempty"` // receives new-application notices

	SMTPHost     string `json:"smtp_host,omitempty"`
	SMTPPort     int    `json:"smtp_port,omitempty"`
	SMTPUsername string `json:"smtp_username,omitempty"`
	SMTPPassword string `json:"smtp_password,omitempty"`

	MailgunDomain string `json:"mailgun_domain,omitempty"`
	MailgunAPIKey string `json:"mailgun_api_key,omitempty"`

	SendGridAPIKey string `json:"sendgrid_api_key,omitempty"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:     8080,
		Env:      "development",
		LogLevel: "info",
		Identity: IdentityConfig{Provider: IdentityLocal},
		Mail: MailConfig{
			Provider: MailLog,
			FromName: "Careers",
			SMTPPort: 465,
		},
	}
}

// Load builds the configuration from defaults, the JSON file at path (if any)
// and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read, parsed or does not match the config schema.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := schemas.ValidateConfig(data); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	result.DatabaseURL = firstNonEmpty(result.DatabaseURL, defaults.DatabaseURL)
	result.Env = firstNonEmpty(result.Env, defaults.Env)
	result.LogLevel = firstNonEmpty(result.LogLevel, defaults.LogLevel)
	result.CORSOrigin = firstNonEmpty(result.CORSOrigin, defaults.CORSOrigin)

	result.Identity.Provider = firstNonEmpty(result.Identity.Provider, defaults.Identity.Provider)
	result.Identity.GoTrueURL = firstNonEmpty(result.Identity.GoTrueURL, defaults.Identity.GoTrueURL)
	result.Identity.GoTrueAPIKey = firstNonEmpty(result.Identity.GoTrueAPIKey, defaults.Identity.GoTrueAPIKey)

	m, d := &result.Mail, defaults.Mail
	m.Provider = firstNonEmpty(m.Provider, d.Provider)
	m.From = firstNonEmpty(m.From, d.From)
	m.FromName = firstNonEmpty(m.FromName, d.FromName)
	m.StaffEmail = firstNonEmpty(m.StaffEmail, d.StaffEmail)
	m.SMTPHost = firstNonEmpty(m.SMTPHost, d.SMTPHost)
	if m.SMTPPort == 0 {
		m.SMTPPort = d.SMTPPort
	}
	m.SMTPUsername = firstNonEmpty(m.SMTPUsername, d.SMTPUsername)
	m.SMTPPassword = firstNonEmpty(m.SMTPPassword, d.SMTPPassword)
	m.MailgunDomain = firstNonEmpty(m.MailgunDomain, d.MailgunDomain)
	m.MailgunAPIKey = firstNonEmpty(m.MailgunAPIKey, d.MailgunAPIKey)
	m.SendGridAPIKey = firstNonEmpty(m.SendGridAPIKey, d.SendGridAPIKey)

	return result
}

// applyEnv overrides fields with any environment variables that are set.
func (c *Config) applyEnv() {
	c.Port = getEnvInt("PORT", c.Port)
	c.DatabaseURL = getEnvString("DATABASE_URL", c.DatabaseURL)
	c.Env = getEnvString("APP_ENV", c.Env)
	c.LogLevel = getEnvString("LOG_LEVEL", c.LogLevel)
	c.CORSOrigin = getEnvString("CORS_ORIGIN", c.CORSOrigin)

	c.Identity.Provider = getEnvString("IDENTITY_PROVIDER", c.Identity.Provider)
	c.Identity.GoTrueURL = getEnvString("GOTRUE_URL", c.Identity.GoTrueURL)
	c.Identity.GoTrueAPIKey = getEnvString("GOTRUE_API_KEY", c.Identity.GoTrueAPIKey)

	c.Mail.Provider = getEnvString("MAIL_PROVIDER", c.Mail.Provider)
	c.Mail.From = getEnvString("MAIL_FROM", c.Mail.From)
	c.Mail.FromName = getEnvString("MAIL_FROM_NAME", c.Mail.FromName)
	c.Mail.StaffEmail = getEnvString("STAFF_EMAIL", c.Mail.StaffEmail)
	c.Mail.SMTPHost = getEnvString("SMTP_HOST", c.Mail.SMTPHost)
	c.Mail.SMTPPort = getEnvInt("SMTP_PORT", c.Mail.SMTPPort)
	c.Mail.SMTPUsername = getEnvString("SMTP_USERNAME", c.Mail.SMTPUsername)
	c.Mail.SMTPPassword = getEnvString("SMTP_PASSWORD", c.Mail.SMTPPassword)
	c.Mail.MailgunDomain = getEnvString("MAILGUN_DOMAIN", c.Mail.MailgunDomain)
	c.Mail.MailgunAPIKey = getEnvString("MAILGUN_API_KEY", c.Mail.MailgunAPIKey)
	c.Mail.SendGridAPIKey = getEnvString("SENDGRID_API_KEY", c.Mail.SendGridAPIKey)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}

	switch c.Identity.Provider {
	case IdentityLocal:
	case IdentityGoTrue:
		if c.Identity.GoTrueURL == "" {
			return fmt.Errorf("config error: GOTRUE_URL is required for the gotrue identity provider")
		}
	default:
		return fmt.Errorf("config error: unknown identity provider %q", c.Identity.Provider)
	}

	return c.Mail.Validate()
}

// Validate checks that the selected mail provider has everything it needs.
func (m *MailConfig) Validate() error {
	switch m.Provider {
	case MailLog:
		return nil
	case MailSMTP:
		if m.SMTPHost == "" || m.SMTPPort == 0 || m.From == "" {
			return fmt.Errorf("config error: smtp mail requires SMTP_HOST, SMTP_PORT and MAIL_FROM")
		}
	case MailMailgun:
		if m.MailgunDomain == "" || m.MailgunAPIKey == "" || m.From == "" {
			return fmt.Errorf("config error: mailgun mail requires MAILGUN_DOMAIN, MAILGUN_API_KEY and MAIL_FROM")
		}
	case MailSendGrid:
		if m.SendGridAPIKey == "" || m.From == "" {
			return fmt.Errorf("config error: sendgrid mail requires SENDGRID_API_KEY and MAIL_FROM")
		}
	default:
		return fmt.Errorf("config error: unknown mail provider %q", m.Provider)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
