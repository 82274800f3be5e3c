package handler

import (
	"context"
	"fmt"
	"time"

	"clinical-chat-be/internal/chat"
	"clinical-chat-be/internal/pkg/logger"
	"clinical-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatHandler owns the websocket endpoint of the clinical chat. It admits
// connections (credential check happens exactly once, at admission) and
// hands each admitted connection to its own Session.
type ChatHandler struct {
	registry     *chat.Registry
	tokenService service.ITokenService
	deps         chat.Deps
	timeouts     chat.Timeouts
	logger       logger.ILogger
}

func NewChatHandler(registry *chat.Registry, tokenService service.ITokenService, deps chat.Deps, timeouts chat.Timeouts, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		registry:     registry,
		tokenService: tokenService,
		deps:         deps,
		timeouts:     timeouts,
		logger:       log,
	}
}

// ServeWs upgrades the request and runs one chat session on the resulting
// connection. The credential travels either in the `token` query param
// (browser clients) or the Authorization header (tooling).
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		identity, ok := h.admit(conn)
		if !ok {
			return
		}

		h.logger.Info("ChatHandler", "WebSocket session starting", map[string]interface{}{"user_id": identity.UserId.String()})

		session := chat.NewSession(conn, h.registry, identity, h.deps, h.timeouts, h.logger)
		session.Run(context.Background())

		h.logger.Info("ChatHandler", "WebSocket session ended", map[string]interface{}{"user_id": identity.UserId.String()})
	})(c)
}

// admit verifies the connection's bearer credential. A missing or rejected
// credential closes the socket with a policy-violation code; a verifier
// panic closes it with an internal-error code. Either way no protocol
// message is ever sent to an unadmitted connection.
func (h *ChatHandler) admit(conn *websocket.Conn) (identity *service.Identity, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("ChatHandler", "Credential verification panicked", map[string]interface{}{"panic": fmt.Sprintf("%v", r)})
			h.closeWith(conn, websocket.CloseInternalServerErr, "authentication error")
			identity, ok = nil, false
		}
	}()

	tokenStr := conn.Query("token")
	if tokenStr == "" {
		authHeader := conn.Headers("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		h.logger.Warn("ChatHandler", "Connection rejected: missing credential", nil)
		h.closeWith(conn, websocket.ClosePolicyViolation, "missing token")
		return nil, false
	}

	identity, err := h.tokenService.Verify(tokenStr)
	if err != nil {
		h.logger.Warn("ChatHandler", "Connection rejected: invalid credential", map[string]interface{}{"error": err.Error()})
		h.closeWith(conn, websocket.ClosePolicyViolation, "invalid token")
		return nil, false
	}

	return identity, true
}

func (h *ChatHandler) closeWith(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(time.Second)
	conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	conn.Close()
}

// RegisterRoutes registers the chat websocket route.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/chat", h.ServeWs)
}
