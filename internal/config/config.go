package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port           string
	Environment    string // ENV: production, development, etc.
	LogLevel       string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS, "*" allows any origin
	TrustProxy     bool     // take client IPs from X-Forwarded-For

	StorageDriver string // mongo, postgres or memory
	MongoURI      string
	MongoDatabase string
	PostgresURI   string
	RedisURI      string // empty disables the Redis issuance limiter

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	SMSCountryCode    string

	GoogleAPIKey      string
	GeminiModel       string
	GenerationTimeout time.Duration

	AccessCodeRateLimit  int
	AccessCodeRateWindow time.Duration
}

func Load() *Config {
	origins := parseOrigins(getEnv("ALLOWED_ORIGINS", "*"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins: origins,
		TrustProxy:     strings.EqualFold(getEnv("TRUST_PROXY", "false"), "true"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMongo)),
		MongoURI:      getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017")),
		MongoDatabase: getEnv("MONGODB_DATABASE", "captionly"),
		PostgresURI:   getEnv("POSTGRES_URI", "postgres://localhost:5432/captionly?sslmode=disable"),
		RedisURI:      getEnv("REDIS_URI", ""),

		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		SMSCountryCode:    getEnv("SMS_COUNTRY_CODE", "+1"),

		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GenerationTimeout: time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 30)) * time.Second,

		AccessCodeRateLimit:  getEnvInt("ACCESS_CODE_RATE_LIMIT", 5),
		AccessCodeRateWindow: time.Duration(getEnvInt("ACCESS_CODE_RATE_WINDOW_SECONDS", 600)) * time.Second,
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasTwilio reports whether all Twilio credentials are present.
func (c *Config) HasTwilio() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
