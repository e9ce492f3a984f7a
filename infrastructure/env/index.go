package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"certschool.io/infrastructure/logger"
	"github.com/joho/godotenv"
)

// Config is built once at start-up and handed to everything that talks to
// the outside world. Nothing below the startUp package reads os.Getenv.
type Config struct {
	GinMode     string
	Port        string
	CORSOrigins []string

	DBURL            string
	DBName           string
	DatastoreTimeout time.Duration

	RedisAddr     string
	RedisPassword string

	JWTSigningKey string

	ProviderTimeout time.Duration
	ProviderRetries uint64

	IntasendBaseURL     string
	IntasendSecretKey   string
	IntasendPublicKey   string
	IntasendRedirectURL string

	PaystackBaseURL     string
	PaystackSecretKey   string
	PaystackCallbackURL string

	PesapalBaseURL        string
	PesapalConsumerKey    string
	PesapalConsumerSecret string
	PesapalIPNURL         string
	PesapalIPNID          string
	PesapalCallbackURL    string

	ResendAPIKey       string
	ResendDefaultEmail string
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}
}

// LoadConfig reads the process environment into a Config and fails on
// missing required keys.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		GinMode:     getOrDefault("GIN_MODE", "debug"),
		Port:        getOrDefault("PORT", "8080"),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),

		DBURL:            os.Getenv("DB_URL"),
		DBName:           getOrDefault("DB_NAME", "certschool"),
		DatastoreTimeout: durationOrDefault("DATASTORE_TIMEOUT", 15*time.Second),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),

		ProviderTimeout: durationOrDefault("PROVIDER_TIMEOUT", 30*time.Second),
		ProviderRetries: uintOrDefault("PROVIDER_RETRIES", 2),

		IntasendBaseURL:     getOrDefault("INTASEND_BASE_URL", "https://payment.intasend.com"),
		IntasendSecretKey:   os.Getenv("INTASEND_SECRET_KEY"),
		IntasendPublicKey:   os.Getenv("INTASEND_PUBLIC_KEY"),
		IntasendRedirectURL: os.Getenv("INTASEND_REDIRECT_URL"),

		PaystackBaseURL:     getOrDefault("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackSecretKey:   os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackCallbackURL: os.Getenv("PAYSTACK_CALLBACK_URL"),

		PesapalBaseURL:        getOrDefault("PESAPAL_BASE_URL", "https://pay.pesapal.com/v3"),
		PesapalConsumerKey:    os.Getenv("PESAPAL_CONSUMER_KEY"),
		PesapalConsumerSecret: os.Getenv("PESAPAL_CONSUMER_SECRET"),
		PesapalIPNURL:         os.Getenv("PESAPAL_IPN_URL"),
		PesapalIPNID:          os.Getenv("PESAPAL_IPN_ID"),
		PesapalCallbackURL:    os.Getenv("PESAPAL_CALLBACK_URL"),

		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		ResendDefaultEmail: os.Getenv("RESEND_DEFAULT_EMAIL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	missing := []string{}
	if cfg.DBURL == "" {
		missing = append(missing, "DB_URL")
	}
	if cfg.JWTSigningKey == "" {
		missing = append(missing, "JWT_SIGNING_KEY")
	}
	if cfg.GinMode != "debug" && cfg.GinMode != "release" {
		return fmt.Errorf("invalid gin mode used - %s", cfg.GinMode)
	}
	if len(missing) != 0 {
		return fmt.Errorf("missing required env variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getOrDefault(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warning("invalid duration in env, using default", logger.LoggerOptions{
			Key:  "key",
			Data: key,
		}, logger.LoggerOptions{
			Key:  "value",
			Data: v,
		})
		return fallback
	}
	return d
}

func uintOrDefault(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
