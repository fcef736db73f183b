package ws

import (
	"net/http"

	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub *Hub
	jwt jwt.Service
	log *zap.SugaredLogger
}

func NewHandler(hub *Hub, jwtSvc jwt.Service, log *zap.SugaredLogger) *Handler {
	return &Handler{hub: hub, jwt: jwtSvc, log: logger.Component(log, "ws")}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handle upgrades GET /ws?token=<access token>. Browsers cannot set headers on
// websocket requests, so the token travels in the query string.
func (h *Handler) Handle(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	claims, err := h.jwt.ValidateToken(c.Query("token"), jwt.TokenTypeAccess)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	upgrade := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warnw("upgrade failed", logger.FieldUserID, claims.UserID, logger.FieldError, err)
			return
		}
		client := NewClient(h.hub, conn, claims.UserID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})
	return upgrade(c)
}
