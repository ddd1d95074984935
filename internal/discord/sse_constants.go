package discord

import (
	"time"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
)

// SSE client configuration
const (
	sseInitialBackoff    = 1 * time.Second
	sseMaxBackoff        = 30 * time.Second
	sseBackoffMultiplier = 2.0
	sseBufferSize        = 64 * 1024
)

// Event types the bot announces in the notification channel
const (
	SSEEventTypeBoxOpened          = string(event.BoxOpened)
	SSEEventTypeLeaderboardUpdated = string(event.LeaderboardUpdated)
	SSEEventTypeStateErased        = string(event.StateErased)
)

// NotifiedEventTypes is the stream filter the bot subscribes with
var NotifiedEventTypes = []string{
	SSEEventTypeBoxOpened,
	SSEEventTypeLeaderboardUpdated,
	SSEEventTypeStateErased,
}

// announceMinTier is the lowest tier whose opens are posted to the channel
const announceMinTier = domain.TierRare

// SSE log messages
const (
	sseLogMsgClientConnected   = "SSE client connected"
	sseLogMsgClientStopped     = "SSE client stopped"
	sseLogMsgConnectionFailed  = "SSE connection failed"
	sseLogMsgParseError        = "Failed to parse SSE event"
	sseLogMsgHandlerError      = "SSE event handler error"
	sseLogMsgNotificationSent  = "Discord notification sent"
	sseLogMsgNotificationError = "Failed to send Discord notification"
)
