package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(
		Load,
		NewValuationConfigHolder,
	),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	OTLPEndpoint string

	ValuationConfigPath string
	SnowflakeNode       int64

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBAutoSeed        bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:             getenv("APP_SERVICE", "pawnshop"),
		AppVersion:          getenv("APP_VERSION", "0.1.0"),
		Environment:         getenv("ENVIRONMENT", "development"),
		OTLPEndpoint:        getenv("OTLP_ENDPOINT", "localhost:4317"),
		ValuationConfigPath: strings.TrimSpace(getenv("VALUATION_CONFIG_PATH", "")),
		SnowflakeNode:       getenvInt64("SNOWFLAKE_NODE", 1),
		DBType:              getenv("DATABASE_TYPE", "sqlite"),
		DBHost:              getenv("DATABASE_HOST", "localhost"),
		DBPort:              getenv("DATABASE_PORT", "5432"),
		DBName:              getenv("DATABASE_NAME", "pawnshop"),
		DBUser:              getenv("DATABASE_USER", "postgres"),
		DBPassword:          getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:           getenv("DATABASE_SSLMODE", "disable"),
		DBPath:              getenv("DATABASE_PATH", "pawnshop.db"),
		DBMaxIdleConn:       getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:       getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime:   getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBAutoSeed:          getenvBool("DATABASE_AUTO_SEED", true),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
