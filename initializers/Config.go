package initializers

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     string
	MongoURI string
	DBName   string

	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool

	TwilioAccountSID       string
	TwilioAuthToken        string
	TwilioVerifyServiceSID string

	AllowedOrigins []string

	LogLevel  string
	LogPretty bool

	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() Config {
	return Config{
		Port:     getEnv("PORT", "3001"),
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   getEnv("DB_NAME", "matchup"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     time.Hour,
		CookieSecure: getBool("COOKIE_SECURE", false),

		TwilioAccountSID:       os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:        os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioVerifyServiceSID: os.Getenv("TWILIO_VERIFY_SERVICE_SID"),

		AllowedOrigins: getList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getBool("LOG_PRETTY", false),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 5),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
