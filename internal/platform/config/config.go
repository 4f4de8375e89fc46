package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter formatted rate, e.g. "5-M"
	ExportRateLimit    string
	AuditLogLimit      int // Default page size of the audit listing

	// Audit event publishing; empty AMQPURL disables it
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Spreadsheet export; empty GoogleSpreadsheetID keeps exports in memory
	GoogleSpreadsheetID      string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
	PosthogAPIKey            string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "farm-ledger-app")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("EXPORT_RATE_LIMIT", "10-H")
	v.SetDefault("AUDIT_LOG_LIMIT", 200)
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "farm_ledger.audit")
	v.SetDefault("AMQP_QUEUE", "farm_ledger.audit.tail")
	v.SetDefault("GOOGLE_SPREADSHEET_ID", "")
	v.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	v.SetDefault("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	v.SetDefault("POSTHOG_API_KEY", "")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:              v.GetString("PGSQL_URL"),
		Port:                     v.GetString("PORT"),
		IsProduction:             v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:            v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		JWTIssuer:                v.GetString("JWT_ISSUER"),
		CORSAllowedOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:           v.GetString("LOGIN_RATE_LIMIT"),
		ExportRateLimit:          v.GetString("EXPORT_RATE_LIMIT"),
		AuditLogLimit:            v.GetInt("AUDIT_LOG_LIMIT"),
		AMQPURL:                  v.GetString("AMQP_URL"),
		AMQPExchange:             v.GetString("AMQP_EXCHANGE"),
		AMQPQueue:                v.GetString("AMQP_QUEUE"),
		GoogleSpreadsheetID:      v.GetString("GOOGLE_SPREADSHEET_ID"),
		GoogleServiceAccountFile: v.GetString("GOOGLE_SERVICE_ACCOUNT_FILE"),
		GoogleServiceAccountJSON: v.GetString("GOOGLE_SERVICE_ACCOUNT_JSON"),
		PosthogAPIKey:            v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == insecureJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = insecureJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = parseDuration(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.RefreshTokenExpiryDuration = parseDuration(v, "REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)

	if cfg.AuditLogLimit <= 0 {
		log.Printf("Warning: Invalid value for AUDIT_LOG_LIMIT (%d). Defaulting to 200.\n", cfg.AuditLogLimit)
		cfg.AuditLogLimit = 200
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
