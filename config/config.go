package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	Port        string
	CorsOrigins string
	LogLevel    string

	StoreDriver string // mongo or memory
	MongoURI    string
	DBName      string

	StripeSecretKey string
	StripeApiURL    string
	Currency        string

	SendGridApiKey string
	EmailSender    string

	CounterSyncSchedule string // cron schedule, empty disables
	ShutdownTimeout     int    // seconds
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		CorsOrigins: getEnv("CORS_ORIGINS", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		MongoURI:    mongoURI(),
		DBName:      getEnv("DB_NAME", "marryDB"),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripeApiURL:    getEnv("STRIPE_API_URL", "https://api.stripe.com/v1/"),
		Currency:        strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),

		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "noreply@marrynow.app"),

		CounterSyncSchedule: getEnv("COUNTER_SYNC_SCHEDULE", "@every 10m"),
		ShutdownTimeout:     getEnvInt("SHUTDOWN_TIMEOUT", 10),
	}

	// Validate critical configuration
	if cfg.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is not set, contact request payments will fail")
	}
	if cfg.SendGridApiKey == "" {
		log.Warn().Msg("SENDGRID_API_KEY is not set, notification emails are only logged")
	}

	return cfg
}

// mongoURI prefers MONGODB_URI and otherwise builds an Atlas URI from the
// DB_USER, DB_PASS and DB_CLUSTER variables.
func mongoURI() string {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return uri
	}
	user, pass := os.Getenv("DB_USER"), os.Getenv("DB_PASS")
	if user == "" || pass == "" {
		return "mongodb://localhost:27017"
	}
	cluster := getEnv("DB_CLUSTER", "cluster0.mongodb.net")
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		url.QueryEscape(user), url.QueryEscape(pass), cluster, getEnv("DB_APP_NAME", "Cluster0"))
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("invalid integer environment variable")
		return defaultValue
	}
	return intValue
}
