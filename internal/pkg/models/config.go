package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	NSQ       NSQConfig
	JWT       JWTConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
	Audit     AuditConfig
	Billing   BillingConfig
	Providers ProvidersConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver        string
	Host          string
	Port          int
	Username      string
	Password      string
	Database      string
	SSLMode       string
	MaxConns      int
	IdleConns     int
	AutoMigrate   bool
	MigrationsDir string
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains NSQ producer configuration
type NSQConfig struct {
	Address           string
	NotificationTopic string
	BroadcastTopic    string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains application logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// AuditConfig contains the ledger audit log configuration
type AuditConfig struct {
	Enabled  bool
	FilePath string
}

// BillingConfig contains the payment and ledger settings
type BillingConfig struct {
	BaseCurrency       string
	AllowedCurrencies  []string
	RulesFile          string
	PublicURL          string
	InternalAPIKeyHash string
	SweepEnabled       bool
	SweepInterval      time.Duration
	SweepMinAge        time.Duration
	SweepBatchSize     int
	PendingTTL         time.Duration
	WebhookLockTTL     time.Duration
	Rules              BillingRules
}

// BillingRules are loaded from the rules file
type BillingRules struct {
	Providers map[string]ProviderRule `mapstructure:"providers"`
	// Rates maps a currency code to its value in the base currency
	Rates map[string]string `mapstructure:"rates"`
}

// ProviderRule holds the charge currency and minimum of one provider
type ProviderRule struct {
	Currency  string   `mapstructure:"currency"`
	MinAmount int64    `mapstructure:"min_amount"`
	Methods   []string `mapstructure:"methods"`
}

// ProvidersConfig holds the credentials of every payment provider
type ProvidersConfig struct {
	YooKassa    YooKassaConfig
	Stripe      StripeConfig
	CryptoCloud CryptoCloudConfig
	LiqPay      LiqPayConfig
	Timeout     time.Duration
}

type YooKassaConfig struct {
	BaseURL   string
	ShopID    string
	SecretKey string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
}

type CryptoCloudConfig struct {
	BaseURL   string
	APIKey    string
	ShopID    string
	SecretKey string
	// Currency invoices are priced in, used when a postback omits it
	Currency string
}

type LiqPayConfig struct {
	CheckoutURL string
	PublicKey   string
	PrivateKey  string
	Sandbox     bool
}
