package notifications

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pavlohrechko/go-dating-recommendations/internal/api/activity"
	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// likeMessage is what a connected client sends over the socket to like or
// unlike another user.
type likeMessage struct {
	Action   string    `json:"action"` // "like" or "unlike"
	TargetID uuid.UUID `json:"targetID"`
}

// ackMessage reports the outcome of a client action back on the same socket.
type ackMessage struct {
	Action       string `json:"action"`
	StatusCode   int    `json:"statusCode"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// wsClient wraps a websocket connection with a write lock; gorilla allows
// only one concurrent writer per connection.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Send(n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(n)
}

func (c *wsClient) sendAck(a ackMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(a)
}

// Hub upgrades websocket connections and routes like/unlike messages: the
// swipe is persisted through the activity service, then the target user's
// live connections are notified. Delivery is best-effort; the persisted
// record is the source of truth.
type Hub struct {
	logger          *slog.Logger
	activityService activity.Service
	registry        *Registry
	upgrader        websocket.Upgrader
}

func NewHub(activityService activity.Service, logger *slog.Logger) *Hub {
	return &Hub{
		logger:          logger,
		activityService: activityService,
		registry:        NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Registry exposes the connection registry, mainly for tests and for the
// container to report connection counts.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// ServeWS handles GET /ws?userId={id}: upgrades the connection, registers it
// for the user and pumps incoming like/unlike messages until the socket
// closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "ServeWS"))

	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil || userID == uuid.Nil {
		l.WarnContext(r.Context(), "Invalid userId query parameter")
		http.Error(w, "userId is empty or invalid", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		l.ErrorContext(r.Context(), "Websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &wsClient{conn: conn}
	h.registry.Add(userID, client)
	l.InfoContext(r.Context(), "Websocket connected", slog.String("userID", userID.String()))

	defer func() {
		h.registry.Remove(userID, client)
		conn.Close()
		l.InfoContext(r.Context(), "Websocket disconnected", slog.String("userID", userID.String()))
	}()

	for {
		var msg likeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.WarnContext(r.Context(), "Websocket read failed", slog.Any("error", err))
			}
			return
		}
		h.handleMessage(r, userID, client, msg)
	}
}

func (h *Hub) handleMessage(r *http.Request, userID uuid.UUID, client *wsClient, msg likeMessage) {
	l := h.logger.With(slog.String("handler", "handleMessage"), slog.String("userID", userID.String()), slog.String("action", msg.Action))

	var result types.Result
	switch msg.Action {
	case "like":
		result = h.activityService.AddLikeFromUser(r.Context(), msg.TargetID, userID)
	case "unlike":
		result = h.activityService.RemoveLikeFromUser(r.Context(), msg.TargetID, userID)
	default:
		result = types.Failure(http.StatusBadRequest, "unknown action")
	}

	ack := ackMessage{Action: msg.Action, StatusCode: result.StatusCode, ErrorMessage: result.ErrorMessage}
	if err := client.sendAck(ack); err != nil {
		l.WarnContext(r.Context(), "Failed to write ack", slog.Any("error", err))
	}

	if !result.IsSuccess() {
		l.WarnContext(r.Context(), "Action rejected", slog.Int("status", result.StatusCode), slog.String("message", result.ErrorMessage))
		return
	}

	if msg.Action == "like" {
		delivered := h.registry.Notify(msg.TargetID, Notification{Type: "like", FromID: userID})
		l.DebugContext(r.Context(), "Like notification fanned out", slog.String("targetID", msg.TargetID.String()), slog.Int("delivered", delivered))
	}
}
