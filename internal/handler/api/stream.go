package api

import (
	"loanerdesk/internal/notifier"
	"loanerdesk/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// StreamHandler upgrades viewers onto the reservation update broadcast.
type StreamHandler struct {
	hub *notifier.Hub
	cfg config.StreamConfig
}

func NewStreamHandler(hub *notifier.Hub, cfg config.StreamConfig) *StreamHandler {
	return &StreamHandler{hub: hub, cfg: cfg}
}

// @Summary Subscribe to reservation updates
// @Description WebSocket endpoint; every committed reservation change is pushed as a reservation_update message
// @Tags stream
// @Router /ws [get]
func (h *StreamHandler) Subscribe(c *gin.Context) {
	notifier.ServeWS(h.hub, h.cfg, c.Writer, c.Request)
}
