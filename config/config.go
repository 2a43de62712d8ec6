package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only suitable for local development.
const DefaultJWTSecret = "change-me"

// ReleaseMode is the APP_MODE value used in production.
const ReleaseMode = "release"

type Config struct {
	AppPort  string
	AppMode  string
	LogMode  string
	DBDriver string
	DBURL    string
	// DBMaxOpenConns of zero leaves the driver default; sqlite3 is always capped at one.
	DBMaxOpenConns     int
	JWTSecret          string
	JWTExpirySeconds   int
	BcryptCost         int
	CORSAllowedOrigins []string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	// RevocationFallbackTTLHours bounds revocation entries for tokens issued without an expiry.
	RevocationFallbackTTLHours int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		AppPort:                    getEnv("APP_PORT", "8080"),
		AppMode:                    getEnv("APP_MODE", "debug"),
		LogMode:                    getEnv("LOG_MODE", "development"),
		DBDriver:                   getEnv("DB_DRIVER", "sqlite3"),
		DBURL:                      getEnv("DB_URL", "file:chat.db?_foreign_keys=on"),
		DBMaxOpenConns:             getEnvAsInt("DB_MAX_OPEN_CONNS", 0),
		JWTSecret:                  getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTExpirySeconds:           getEnvAsInt("JWT_EXPIRY_SECONDS", 900),
		BcryptCost:                 getEnvAsInt("BCRYPT_COST", 10),
		CORSAllowedOrigins:         getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RedisHost:                  getEnv("REDIS_HOST", ""),
		RedisPort:                  getEnv("REDIS_PORT", "6379"),
		RedisPassword:              getEnv("REDIS_PASSWORD", ""),
		RedisDB:                    getEnvAsInt("REDIS_DB", 0),
		RevocationFallbackTTLHours: getEnvAsInt("REVOCATION_FALLBACK_TTL_HOURS", 24*30),
	}

	if cfg.JWTSecret == DefaultJWTSecret {
		log.Println("WARNING: JWT_SECRET is not set, tokens are signed with the development default")
	}
	return cfg
}

// Validate rejects settings that are unsafe for the configured mode.
func (c *Config) Validate() error {
	if c.AppMode == ReleaseMode && (c.JWTSecret == DefaultJWTSecret || c.JWTSecret == "") {
		return errors.New("JWT_SECRET must be set when APP_MODE=release")
	}
	return nil
}

// RedisEnabled reports whether a revocation list should be wired.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
