package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	ServerPort        string
	CORSAllowOrigins  string
	ApplicationLocale string

	JWTSecret          string
	JWTLifetimeMinutes int
	JWTCookieName      string
	JWTHeaderPrefix    string

	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	TranslationCacheTTL time.Duration

	FileStorageDir     string
	FileStorageBaseURL string

	LogFormat string
	LogLevel  string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "bearinmind"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "bearinmind.db"),

		ServerPort:        getEnv("SERVER_PORT", "8080"),
		CORSAllowOrigins:  getEnv("CORS_ALLOW_ORIGINS", "*"),
		ApplicationLocale: getEnv("APPLICATION_LOCALE", "en"),

		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		JWTCookieName:   getEnv("JWT_COOKIE_NAME", "BIM_TOKEN"),
		JWTHeaderPrefix: getEnv("JWT_HEADER_PREFIX", "Bearer "),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		FileStorageDir:     getEnv("FILE_STORAGE_DIR", "./storage"),
		FileStorageBaseURL: getEnv("FILE_STORAGE_BASE_URL", "/files"),

		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTLifetimeMinutes, err = getEnvInt("JWT_LIFETIME_MINUTES", 60); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.TranslationCacheTTL, err = getEnvDuration("TRANSLATION_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first setting that would make the server misbehave.
func (c *Config) Validate() error {
	if c.ApplicationLocale == "" {
		return errors.New("APPLICATION_LOCALE must not be empty")
	}
	if c.JWTLifetimeMinutes <= 0 {
		return fmt.Errorf("JWT_LIFETIME_MINUTES must be positive, got %d", c.JWTLifetimeMinutes)
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func (c *Config) JWTLifetime() time.Duration {
	return time.Duration(c.JWTLifetimeMinutes) * time.Minute
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
