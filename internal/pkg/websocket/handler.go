package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/middleware"
	"github.com/yigit/marksheet/internal/pkg/events"
)

// Handler for WebSocket connections
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to dashboard events
// @Description Upgrades to a WebSocket that streams {"event","data"} frames relevant to the caller's role. Browsers pass the session token in the token query parameter. A deleted account receives session:revoked and the socket closes.
// @Tags events, websocket
// @Security BearerAuth
// @Param token query string false "Session token"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Router /events/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("subject", session.SubjectID()).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		id:      uuid.NewString(),
		conn:    conn,
		session: session,
		sub: h.hub.bus.Subscribe(
			events.WithFilter(events.RelevantTo(session)),
			events.WithBuffer(h.hub.bufferSize),
		),
		writerDone: make(chan struct{}),
		logger:     h.logger,
	}

	if !h.hub.enqueue(h.hub.register, client) {
		client.closeWith(websocket.CloseTryAgainLater, "try again later")
		client.stop()
		return
	}

	go client.writePump()
	go client.readPump()
}
