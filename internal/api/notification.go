package api

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/service"
	"e1xp_creator_backend/pkg/auth"
	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type feedConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NotificationHub fans freshly created notifications out to connected
// websocket clients. It implements service.NotificationPublisher.
type NotificationHub struct {
	conns map[string][]*feedConn
	mu    sync.RWMutex
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		conns: make(map[string][]*feedConn),
	}
}

type feedMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

func (h *NotificationHub) Publish(n *model.Notification) {
	h.mu.RLock()
	conns := h.conns[n.UserAddress]
	h.mu.RUnlock()

	if len(conns) == 0 {
		return
	}

	payload, err := json.Marshal(feedMessage{Type: "notification", Data: notificationResponse(n)})
	if err != nil {
		logger.Logger().Error("failed to marshal notification frame", zap.Error(err))
		return
	}

	for _, fc := range conns {
		fc.mu.Lock()
		err := fc.conn.WriteMessage(websocket.TextMessage, payload)
		fc.mu.Unlock()
		if err != nil {
			h.remove(n.UserAddress, fc)
		}
	}
}

func (h *NotificationHub) add(address string, fc *feedConn) {
	h.mu.Lock()
	h.conns[address] = append(h.conns[address], fc)
	h.mu.Unlock()
}

func (h *NotificationHub) remove(address string, fc *feedConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[address]
	for i, c := range conns {
		if c == fc {
			h.conns[address] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[address]) == 0 {
		delete(h.conns, address)
	}
}

type notificationRoutes struct {
	ns  service.NotificationServiceI
	hub *NotificationHub
	a   *auth.WalletAuth
}

func NewNotificationRoutes(handler *gin.RouterGroup, ns service.NotificationServiceI, hub *NotificationHub, a *auth.WalletAuth) {
	r := &notificationRoutes{ns: ns, hub: hub, a: a}
	h := handler.Group("/notifications")
	h.GET("/ws/:address", r.Feed)

	authed := h.Group("")
	authed.Use(a.WalletAuthMiddleware())
	{
		authed.GET("/:address", r.GetNotifications)
		authed.GET("/:address/unread", r.GetUnreadNotifications)
		authed.PATCH("/:id/read", r.MarkRead)
		authed.POST("/:address/read-all", r.MarkAllRead)
		authed.DELETE("/:id", r.DeleteNotification)
	}
}

// Feed upgrades to a websocket and streams new notifications for the
// address until the client disconnects.
func (r *notificationRoutes) Feed(c *gin.Context) {
	log := logger.Logger()

	address := strings.ToLower(c.Param("address"))
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	fc := &feedConn{conn: conn}
	r.hub.add(address, fc)

	go func() {
		defer func() {
			r.hub.remove(address, fc)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Info("notification feed closed unexpectedly", zap.Error(err))
				}
				return
			}
		}
	}()
}

func (r *notificationRoutes) GetNotifications(c *gin.Context) {
	r.listNotifications(c, false)
}

func (r *notificationRoutes) GetUnreadNotifications(c *gin.Context) {
	r.listNotifications(c, true)
}

func (r *notificationRoutes) listNotifications(c *gin.Context, unreadOnly bool) {
	log := logger.Logger()

	address := strings.ToLower(c.Param("address"))

	notifications, err := r.ns.ListByUser(c.Request.Context(), address, unreadOnly)
	if err != nil {
		log.Error("failed to get notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get notifications"})
		return
	}

	out := make([]gin.H, len(notifications))
	for i, n := range notifications {
		out[i] = notificationResponse(n)
	}

	c.JSON(http.StatusOK, out)
}

func (r *notificationRoutes) MarkRead(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("failed to parse notification id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	err = r.ns.MarkRead(c.Request.Context(), id)
	if err != nil {
		log.Error("failed to mark notification read", zap.Error(err))
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (r *notificationRoutes) MarkAllRead(c *gin.Context) {
	log := logger.Logger()

	address := strings.ToLower(c.Param("address"))

	err := r.ns.MarkAllRead(c.Request.Context(), address)
	if err != nil {
		log.Error("failed to mark notifications read", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (r *notificationRoutes) DeleteNotification(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("failed to parse notification id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	err = r.ns.Delete(c.Request.Context(), id)
	if err != nil {
		log.Error("failed to delete notification", zap.Error(err))
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func notificationResponse(n *model.Notification) gin.H {
	out := gin.H{
		"id":           n.ID,
		"user_address": n.UserAddress,
		"type":         n.Type,
		"title":        n.Title,
		"message":      n.Message,
		"read":         n.Read,
		"created_at":   n.CreatedAt,
	}
	if n.Metadata != nil {
		out["metadata"] = n.Metadata
	}
	return out
}
