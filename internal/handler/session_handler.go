package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	ws "github.com/yamanekazuki/hr-qa-assistant/internal/websocket"
)

// SessionHandler upgrades authenticated connections and streams session-state
// snapshots through the hub.
type SessionHandler struct {
	hub       *ws.Hub
	jwtSecret string
}

func NewSessionHandler(hub *ws.Hub, jwtSecret string) *SessionHandler {
	return &SessionHandler{hub: hub, jwtSecret: jwtSecret}
}

// Upgrade authenticates from the "token" query parameter (browsers cannot set
// headers on websocket dials) and rejects non-websocket requests.
func (h *SessionHandler) Upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	userID, err := h.authenticate(ctx.Query("token"))
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	ctx.Locals("ws_user_id", userID)
	return ctx.Next()
}

func (h *SessionHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("ws_user_id").(uuid.UUID)
		if !ok {
			conn.Close()
			return
		}
		ws.NewClient(h.hub, conn, userID).Serve()
	})
}

func (h *SessionHandler) authenticate(tokenStr string) (uuid.UUID, error) {
	if tokenStr == "" {
		return uuid.Nil, jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	raw, _ := claims["user_id"].(string)
	return uuid.Parse(raw)
}
