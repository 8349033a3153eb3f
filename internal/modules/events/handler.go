package events

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lulabtechnology/saas-clinicas/internal/pkg/jwt"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the dashboard domain is fixed
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades dashboard clients onto the tenant event feed.
type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewHandler(hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{hub: hub, jwtService: jwtService}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/events", h.HandleWebSocket)
}

// HandleWebSocket authenticates via ?token= because browsers cannot set
// headers on WebSocket requests.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("level=error msg=websocket upgrade failed err=%v", err)
		return
	}

	h.hub.ServeWS(conn, claims.TenantID)
}
