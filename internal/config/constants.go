package config

import (
	"time"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// Store backends accepted by STORE_BACKEND
const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Defaults applied when a variable is unset
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"

	DefaultDBName            = "boxledger"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	// DefaultBoxPrice is 0.075 native coin in yocto units
	DefaultBoxPrice           = "75000000000000000000000"
	DefaultContractAccount    = "lootbox.near"
	DefaultMintStartTimestamp = domain.MintStartTimestamp
	DefaultShortfallPolicy    = "credit"
	DefaultRandomSource       = "crypto"
	DefaultRewardCacheSize    = 1024
	DefaultRewardCacheTTL     = 30 * time.Second

	DefaultDispatchWorkers     = 4
	DefaultDispatchQueueSize   = 256
	DefaultOutboxSweepSchedule = "*/30 * * * * *"

	DefaultKafkaTopic          = "boxledger.events"
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)
