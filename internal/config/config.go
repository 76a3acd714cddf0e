package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs at startup. It is built once
// in main and passed down; packages never read the environment themselves.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	PoolMaxConns      int32
	DBConnectTimeout  time.Duration
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	ShutdownTimeout   time.Duration

	AuditWorkers      int
	AuditBatchSize    int
	AuditFlushTimeout time.Duration

	// Kafka is optional: with no brokers configured the audit pipeline
	// falls back to the console producer.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads .env (searching the working directory and up to two parents,
// same lookup the deploy scripts rely on) and then the environment.
func Load() (*Config, error) {
	loadDotenv()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "9000"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBUser:            getEnv("POSTGRES_USER", "postgres"),
		DBPassword:        getEnv("POSTGRES_PASSWORD", ""),
		DBName:            getEnv("POSTGRES_DB", "marketplace"),
		KafkaTopic:        getEnv("KAFKA_AUDIT_TOPIC", "marketplace.audit"),
		HTTPReadTimeout:   10 * time.Second,
		HTTPWriteTimeout:  10 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		AuditFlushTimeout: 500 * time.Millisecond,
	}

	var err error
	if cfg.DBPort, err = getEnvInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	poolMax, err := getEnvInt("DB_POOL_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	cfg.PoolMaxConns = int32(poolMax)

	connectTimeout, err := getEnvInt("DB_CONNECT_TIMEOUT_SECONDS", 3)
	if err != nil {
		return nil, err
	}
	cfg.DBConnectTimeout = time.Duration(connectTimeout) * time.Second

	if cfg.AuditWorkers, err = getEnvInt("AUDIT_WORKERS", 2); err != nil {
		return nil, err
	}
	if cfg.AuditBatchSize, err = getEnvInt("AUDIT_BATCH_SIZE", 5); err != nil {
		return nil, err
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg, nil
}

// Dsn renders the pgx connection string.
func (c *Config) Dsn() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func loadDotenv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			return
		}
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return n, nil
}
