package config

import (
	"fmt"
	"os"
	"strings"

	"rentaldesk-backend/internal/pricing"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Storage   StorageConfig   `yaml:"storage"`
}

// ServerConfig contains the HTTP API and gRPC ops listener settings
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	GRPCPort int    `yaml:"grpc_port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

const (
	EmailProviderSMTP     = "smtp"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderLog      = "log" // local development, nothing is sent
)

// EmailConfig selects and configures the outbound mail provider
type EmailConfig struct {
	Provider       string     `yaml:"provider"`
	From           string     `yaml:"from"`
	FromName       string     `yaml:"from_name"`
	SMTP           SMTPConfig `yaml:"smtp"`
	SendGridAPIKey string     `yaml:"sendgrid_api_key"`
	AdminEmail     string     `yaml:"admin_email"` // receives job reports; empty disables them
}

// SMTPConfig contains SMTP relay settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// JWTConfig contains settings for validating staff access tokens
type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// PricingConfig overrides the standard rate card. Unset values keep the defaults.
type PricingConfig struct {
	Currency              string   `yaml:"currency"`
	InvoiceNumberTemplate string   `yaml:"invoice_number_template"`
	LabourBase            *float64 `yaml:"labour_base"`
	LabourThreshold       *float64 `yaml:"labour_threshold"`
	LabourStep            *float64 `yaml:"labour_step"`
	LabourStepFee         *float64 `yaml:"labour_step_fee"`
	MountLabour           *float64 `yaml:"mount_labour"`
	InsuranceRate         *float64 `yaml:"insurance_rate"`
	ConsumablesRate       *float64 `yaml:"consumables_rate"`
	DeliveryPickup        *float64 `yaml:"delivery_pickup"`
	AdminFeeRate          *float64 `yaml:"admin_fee_rate"`
}

// SchedulerConfig contains cron schedule settings (with seconds field)
type SchedulerConfig struct {
	AuditOrderPricing string `yaml:"audit_order_pricing"`
	CloseEndedForms   string `yaml:"close_ended_forms"`
}

// StorageConfig contains settings for uploaded product images and logos
type StorageConfig struct {
	Dir         string `yaml:"dir"`           // local directory holding uploads
	BaseURL     string `yaml:"base_url"`      // prefix for public file URLs; empty keeps them relative
	MaxUploadMB int64  `yaml:"max_upload_mb"` // per-file limit
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes, applying environment overrides.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("EMAIL_PROVIDER"); val != "" {
		c.Email.Provider = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.Email.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Email.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.Email.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.Email.SMTP.Password = val
	}
	if val := os.Getenv("ADMIN_EMAIL"); val != "" {
		c.Email.AdminEmail = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.GRPCPort)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Pricing
	if val := os.Getenv("CURRENCY"); val != "" {
		c.Pricing.Currency = val
	}

	// Storage
	if val := os.Getenv("STORAGE_DIR"); val != "" {
		c.Storage.Dir = val
	}
	if val := os.Getenv("STORAGE_BASE_URL"); val != "" {
		c.Storage.BaseURL = val
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = c.Server.Port + 1
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 || c.Server.GRPCPort == c.Server.Port {
		return fmt.Errorf("invalid gRPC port: %d", c.Server.GRPCPort)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	// Email validation
	c.Email.Provider = strings.ToLower(c.Email.Provider)
	if c.Email.Provider == "" {
		c.Email.Provider = EmailProviderSMTP
	}
	switch c.Email.Provider {
	case EmailProviderSMTP:
		if c.Email.SMTP.Host == "" {
			return fmt.Errorf("SMTP host is required")
		}
		if c.Email.SMTP.Port <= 0 || c.Email.SMTP.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.Email.SMTP.Port)
		}
	case EmailProviderSendGrid:
		if c.Email.SendGridAPIKey == "" {
			return fmt.Errorf("SendGrid API key is required")
		}
	case EmailProviderLog:
	default:
		return fmt.Errorf("unknown email provider: %s", c.Email.Provider)
	}
	if c.Email.Provider != EmailProviderLog && c.Email.From == "" {
		return fmt.Errorf("email from address is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Pricing defaults
	if c.Pricing.Currency == "" {
		c.Pricing.Currency = pricing.DefaultCurrency
	}
	if c.Pricing.InvoiceNumberTemplate == "" {
		c.Pricing.InvoiceNumberTemplate = pricing.DefaultInvoiceNumberTemplate
	}
	if _, err := pricing.NewEngine(c.Pricing.Rates()); err != nil {
		return fmt.Errorf("pricing: %w", err)
	}

	// Scheduler defaults
	if c.Scheduler.AuditOrderPricing == "" {
		c.Scheduler.AuditOrderPricing = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.CloseEndedForms == "" {
		c.Scheduler.CloseEndedForms = "0 15 0 * * *" // 12:15 AM UTC
	}

	// Storage defaults
	if c.Storage.Dir == "" {
		c.Storage.Dir = "./uploads"
	}
	c.Storage.BaseURL = strings.TrimRight(c.Storage.BaseURL, "/")
	if c.Storage.MaxUploadMB == 0 {
		c.Storage.MaxUploadMB = 5
	}
	if c.Storage.MaxUploadMB < 0 {
		return fmt.Errorf("invalid storage max_upload_mb: %d", c.Storage.MaxUploadMB)
	}

	return nil
}

// Rates applies the configured overrides to the standard rate card.
func (p PricingConfig) Rates() pricing.Rates {
	r := pricing.DefaultRates()
	set := func(dst *decimal.Decimal, v *float64) {
		if v != nil {
			*dst = decimal.NewFromFloat(*v)
		}
	}
	set(&r.LabourBase, p.LabourBase)
	set(&r.LabourThreshold, p.LabourThreshold)
	set(&r.LabourStep, p.LabourStep)
	set(&r.LabourStepFee, p.LabourStepFee)
	set(&r.MountLabour, p.MountLabour)
	set(&r.InsuranceRate, p.InsuranceRate)
	set(&r.ConsumablesRate, p.ConsumablesRate)
	set(&r.DeliveryPickup, p.DeliveryPickup)
	set(&r.AdminFeeRate, p.AdminFeeRate)
	return r
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP API address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the gRPC ops address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}
