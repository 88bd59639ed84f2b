package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	configs := loadConfigFromEnv()

	rules, err := LoadBillingRules(configs.Billing.RulesFile)
	if err != nil {
		log.Printf("Warning: failed to load billing rules from %s, using defaults: %v", configs.Billing.RulesFile, err)
		rules = DefaultBillingRules()
	}
	configs.Billing.Rules = rules

	return configs
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "thqlabel-billing")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", false)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 15)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 15)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "localhost")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 20)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 5)
	configs.Database.AutoMigrate = GetEnvAsBool("DB_AUTO_MIGRATE", true)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "nats://localhost:4222")

	// NSQ config
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "localhost:4150")
	configs.NSQ.NotificationTopic = GetEnv("NSQ_NOTIFICATION_TOPIC", "finance.notifications")
	configs.NSQ.BroadcastTopic = GetEnv("NSQ_BROADCAST_TOPIC", "portal.broadcasts")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 60)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	// Audit config
	configs.Audit.Enabled = GetEnvAsBool("AUDIT_ENABLED", true)
	configs.Audit.FilePath = GetEnv("AUDIT_FILE_PATH", "logs/ledger-audit.log")

	// Billing config
	configs.Billing.BaseCurrency = strings.ToUpper(GetEnv("BILLING_BASE_CURRENCY", "RUB"))
	configs.Billing.AllowedCurrencies = GetEnvAsSlice("BILLING_ALLOWED_CURRENCIES", []string{"RUB", "USD", "UAH"})
	configs.Billing.RulesFile = GetEnv("BILLING_RULES_FILE", "configs/billing.yaml")
	configs.Billing.PublicURL = GetEnv("BILLING_PUBLIC_URL", "http://localhost:3000")
	configs.Billing.InternalAPIKeyHash = GetEnv("BILLING_INTERNAL_API_KEY_HASH", "")
	configs.Billing.SweepEnabled = GetEnvAsBool("BILLING_SWEEP_ENABLED", true)
	configs.Billing.SweepInterval = GetEnvAsDuration("BILLING_SWEEP_INTERVAL", 5*time.Minute)
	configs.Billing.SweepMinAge = GetEnvAsDuration("BILLING_SWEEP_MIN_AGE", 10*time.Minute)
	configs.Billing.SweepBatchSize = GetEnvAsInt("BILLING_SWEEP_BATCH_SIZE", 100)
	configs.Billing.PendingTTL = GetEnvAsDuration("BILLING_PENDING_TTL", 24*time.Hour)
	configs.Billing.WebhookLockTTL = GetEnvAsDuration("BILLING_WEBHOOK_LOCK_TTL", 30*time.Second)

	// Provider config
	configs.Providers.Timeout = GetEnvAsDuration("PROVIDER_TIMEOUT", 15*time.Second)
	configs.Providers.YooKassa.BaseURL = GetEnv("YOOKASSA_BASE_URL", "https://api.yookassa.ru")
	configs.Providers.YooKassa.ShopID = GetEnv("YOOKASSA_SHOP_ID", "")
	configs.Providers.YooKassa.SecretKey = GetEnv("YOOKASSA_SECRET_KEY", "")
	configs.Providers.Stripe.SecretKey = GetEnv("STRIPE_SECRET_KEY", "")
	configs.Providers.Stripe.WebhookSecret = GetEnv("STRIPE_WEBHOOK_SECRET", "")
	configs.Providers.Stripe.BaseURL = GetEnv("STRIPE_BASE_URL", "")
	configs.Providers.CryptoCloud.BaseURL = GetEnv("CRYPTOCLOUD_BASE_URL", "https://api.cryptocloud.plus")
	configs.Providers.CryptoCloud.APIKey = GetEnv("CRYPTOCLOUD_API_KEY", "")
	configs.Providers.CryptoCloud.ShopID = GetEnv("CRYPTOCLOUD_SHOP_ID", "")
	configs.Providers.CryptoCloud.SecretKey = GetEnv("CRYPTOCLOUD_SECRET_KEY", "")
	configs.Providers.CryptoCloud.Currency = configs.Billing.Rules.Providers[models.ProviderCryptoCloud].Currency
	configs.Providers.LiqPay.CheckoutURL = GetEnv("LIQPAY_CHECKOUT_URL", "https://www.liqpay.ua/api/3/checkout")
	configs.Providers.LiqPay.PublicKey = GetEnv("LIQPAY_PUBLIC_KEY", "")
	configs.Providers.LiqPay.PrivateKey = GetEnv("LIQPAY_PRIVATE_KEY", "")
	configs.Providers.LiqPay.Sandbox = GetEnvAsBool("LIQPAY_SANDBOX", false)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsSlice splits a comma separated variable, upper-casing each entry
func GetEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
