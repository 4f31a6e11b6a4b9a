package handler

import (
	"edumate-be/internal/dto"
	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/pkg/serverutils"
	"edumate-be/internal/service"
	internalWS "edumate-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service service.ILearnerService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewNotificationHandler(service service.ILearnerService, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/notifications")
	g.Use(auth)
	g.Get("/", h.GetNotifications)
	g.Post("/read", h.MarkAllAsRead)
	g.Get("/ws", h.ServeWs)
}

// ServeWs upgrades to a websocket that receives notification frames. The
// token may be passed as ?token= since browsers cannot set headers here.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	userID, err := serverutils.UserID(c)
	if err != nil {
		return err
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID.String()})
		internalWS.Serve(h.hub, conn, userID)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID.String()})
	})(c)
}

// GetNotifications returns the log newest first with the unread flag.
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := serverutils.UserID(c)
	if err != nil {
		return err
	}
	feed, err := h.service.Notifications(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Notifications retrieved", feed))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := serverutils.UserID(c)
	if err != nil {
		return err
	}
	n, err := h.service.MarkAllAsRead(c.UserContext(), userID)
	if err != nil {
		return err
	}
	h.push(c, userID, n)
	return c.JSON(serverutils.SuccessResponse("All notifications marked as read", dto.MarkReadResponse{Updated: n}))
}

// push tells the user's other tabs that the unread badge is gone.
func (h *NotificationHandler) push(c *fiber.Ctx, userID uuid.UUID, updated int) {
	if h.hub == nil || updated == 0 {
		return
	}
	if err := h.hub.Send(c.UserContext(), userID, "notifications_read", dto.MarkReadResponse{Updated: updated}); err != nil {
		h.logger.Warn("NotificationHandler", "Failed to push read state", map[string]interface{}{"user_id": userID.String(), "error": err})
	}
}
