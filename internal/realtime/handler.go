package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"facilityhub/internal/pkg/jwt"
	"facilityhub/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set headers on websocket upgrades; origin is enforced
	// by the CORS layer for the REST surface, so accept here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated clients onto the hub.
type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
	log        *logrus.Logger
}

func NewHandler(hub *Hub, jwtService *jwt.Service, log *logrus.Logger) *Handler {
	return &Handler{hub: hub, jwtService: jwtService, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.handleWebSocket)
}

// handleWebSocket serves GET /ws?token=JWT. Authentication rides on a query
// parameter because websocket upgrades carry no Authorization header.
func (h *Handler) handleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "token query parameter is required")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	h.log.WithField("user_id", claims.UserID).Debug("websocket connected")
	h.hub.ServeConn(conn, claims.UserID)
}
