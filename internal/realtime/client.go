package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type SSEEvent string

const (
	// SSEEventStateChanged tells clients to re-read users, messages and session.
	SSEEventStateChanged SSEEvent = "state_changed"
	SSEEventConnected    SSEEvent = "connected"
)

// ChannelPortal carries portal-wide state notifications.
const ChannelPortal = "portal"

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

type SSEClient struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan SSEMessage
	Logger   *logger.Logger

	done      chan struct{}
	closeOnce sync.Once
}
