package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/agrovet-backend/internal/observability"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/realtime"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), hub: hub}
}

// GET /api/events
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	client := h.hub.NewSSEClient()
	h.hub.AddChannel(client, realtime.ChannelPortal)
	observability.Current().SSEClientConnected()
	h.log.Debug("SSE stream open", "clientID", client.ID, "listeners", h.hub.Subscribers(realtime.ChannelPortal))

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.CloseClient(client)
	observability.Current().SSEClientDisconnected()
	h.log.Debug("SSE stream closed", "clientID", client.ID, "listeners", h.hub.Subscribers(realtime.ChannelPortal))
}
