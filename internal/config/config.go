package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string // API key for authentication
	TrustedProxies []string

	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string

	StoreBackend      string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	ContractAccount     string
	OwnerAccount        string
	BoxPrice            string
	MintStartTimestamp  int64 // nanoseconds since the Unix epoch
	PoolShortfallPolicy string
	RandomSource        string
	RandomSalt          string
	RewardCacheSize     int
	RewardCacheTTL      time.Duration

	NativeBankURL       string
	NativeBankAPIKey    string
	DispatchWorkers     int
	DispatchQueueSize   int
	OutboxSweepSchedule string

	KafkaBrokers        []string
	KafkaTopic          string
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", DefaultVersion),

		StoreBackend:      strings.ToLower(getEnv("STORE_BACKEND", StoreBackendPostgres)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		ContractAccount:     getEnv("CONTRACT_ACCOUNT", DefaultContractAccount),
		OwnerAccount:        getEnv("OWNER_ACCOUNT", ""),
		BoxPrice:            getEnv("BOX_PRICE", DefaultBoxPrice),
		PoolShortfallPolicy: strings.ToLower(getEnv("POOL_SHORTFALL_POLICY", DefaultShortfallPolicy)),
		RandomSource:        strings.ToLower(getEnv("RANDOM_SOURCE", DefaultRandomSource)),
		RandomSalt:          getEnv("RANDOM_SALT", ""),
		RewardCacheSize:     getEnvAsInt("REWARD_CACHE_SIZE", DefaultRewardCacheSize),
		RewardCacheTTL:      getEnvAsDuration("REWARD_CACHE_TTL", DefaultRewardCacheTTL),

		NativeBankURL:       getEnv("NATIVE_BANK_URL", ""),
		NativeBankAPIKey:    getEnv("NATIVE_BANK_API_KEY", ""),
		DispatchWorkers:     getEnvAsInt("DISPATCH_WORKERS", DefaultDispatchWorkers),
		DispatchQueueSize:   getEnvAsInt("DISPATCH_QUEUE_SIZE", DefaultDispatchQueueSize),
		OutboxSweepSchedule: getEnv("OUTBOX_SWEEP_SCHEDULE", DefaultOutboxSweepSchedule),

		KafkaBrokers:        getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:          getEnv("KAFKA_TOPIC", DefaultKafkaTopic),
		EventDeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", DefaultEventDeadLetterPath),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	startStr := getEnv("MINT_START_TIMESTAMP", "")
	if startStr == "" {
		cfg.MintStartTimestamp = DefaultMintStartTimestamp
	} else {
		start, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MINT_START_TIMESTAMP value: %w", err)
		}
		cfg.MintStartTimestamp = start
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.OwnerAccount == "" {
		return nil, fmt.Errorf("OWNER_ACCOUNT environment variable must be set")
	}

	switch cfg.StoreBackend {
	case StoreBackendPostgres, StoreBackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND value %q: expected %s or %s", cfg.StoreBackend, StoreBackendPostgres, StoreBackendMemory)
	}

	return cfg, nil
}

// MintStart returns the configured sale opening time.
func (c *Config) MintStart() time.Time {
	return time.Unix(0, c.MintStartTimestamp).UTC()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a time.Duration variable, falling back to the default when unset or malformed
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
