package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	App      AppConfig
	GovAPI   GovAPIConfig
	Offline  OfflineConfig
}

type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// DSN is used by the pgx pool; when empty the users table is not touched.
	DSN string
}

// Enabled reports whether a remote PostgreSQL mirror is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != "" && d.Name != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	CheckRevoked    bool
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type GovAPIConfig struct {
	DataSource string // "static" or "live"
	Timeout    time.Duration
	Rate       float64
	Burst      int
	CacheTTL   time.Duration
	APIKey     string

	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string
}

type OfflineConfig struct {
	SyncSchedule string
	MaxRetries   int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "benefits"),
			DSN:      getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CheckRevoked:    getEnvAsBool("FIREBASE_CHECK_REVOKED", false),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "console"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		GovAPI: GovAPIConfig{
			DataSource:        getEnv("GOVAPI_DATA_SOURCE", "static"),
			Timeout:           getEnvAsDuration("GOVAPI_TIMEOUT", 8*time.Second),
			Rate:              getEnvAsFloat("GOVAPI_RATE", 5),
			Burst:             getEnvAsInt("GOVAPI_BURST", 10),
			CacheTTL:          getEnvAsDuration("GOVAPI_CACHE_TTL", 5*time.Minute),
			APIKey:            getEnv("GOVAPI_API_KEY", ""),
			OAuthClientID:     getEnv("GOVAPI_OAUTH_CLIENT_ID", ""),
			OAuthClientSecret: getEnv("GOVAPI_OAUTH_CLIENT_SECRET", ""),
			OAuthTokenURL:     getEnv("GOVAPI_OAUTH_TOKEN_URL", ""),
		},
		Offline: OfflineConfig{
			SyncSchedule: getEnv("OFFLINE_SYNC_SCHEDULE", "@every 1m"),
			MaxRetries:   getEnvAsInt("OFFLINE_MAX_RETRIES", 3),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	switch c.GovAPI.DataSource {
	case "static", "live":
	default:
		return fmt.Errorf("GOVAPI_DATA_SOURCE must be static or live, got %q", c.GovAPI.DataSource)
	}

	if c.Offline.MaxRetries < 1 {
		return fmt.Errorf("OFFLINE_MAX_RETRIES must be positive")
	}

	// Without Firebase the API trusts identity headers.
	if c.App.IsProduction() && c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when APP_ENV=production")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
