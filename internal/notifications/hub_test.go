package notifications

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// mockActivityService is a mock implementation of the activity.Service interface
type mockActivityService struct {
	mock.Mock
}

func (m *mockActivityService) GetExclusions(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID] {
	args := m.Called(ctx, userID)
	return args.Get(0).(types.ResultOf[[]uuid.UUID])
}

func (m *mockActivityService) CreateUserActivity(ctx context.Context, userID uuid.UUID) types.Result {
	args := m.Called(ctx, userID)
	return args.Get(0).(types.Result)
}

func (m *mockActivityService) RecordActivity(ctx context.Context, userID, targetID uuid.UUID, kind types.ActivityKind) types.Result {
	args := m.Called(ctx, userID, targetID, kind)
	return args.Get(0).(types.Result)
}

func (m *mockActivityService) AddLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result {
	args := m.Called(ctx, userID, likerID)
	return args.Get(0).(types.Result)
}

func (m *mockActivityService) RemoveLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result {
	args := m.Called(ctx, userID, likerID)
	return args.Get(0).(types.Result)
}

// dialWS connects a websocket client to the hub test server for the user.
func dialWS(t *testing.T, serverURL string, userID uuid.UUID) *websocket.Conn {
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?userId=" + userID.String()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestServeWS(t *testing.T) {
	userID := uuid.New()
	targetID := uuid.New()

	t.Run("RejectsMissingUserID", func(t *testing.T) {
		hub := NewHub(new(mockActivityService), slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		rr := httptest.NewRecorder()
		hub.ServeWS(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("LikePersistsAndAcks", func(t *testing.T) {
		mockService := new(mockActivityService)
		hub := NewHub(mockService, slog.Default())

		// The like lands on the target's record, sent by this user.
		mockService.On("AddLikeFromUser", mock.Anything, targetID, userID).
			Return(types.Success()).Once()

		server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
		defer server.Close()

		conn := dialWS(t, server.URL, userID)
		require.NoError(t, conn.WriteJSON(likeMessage{Action: "like", TargetID: targetID}))

		var ack ackMessage
		require.NoError(t, conn.ReadJSON(&ack))
		assert.Equal(t, "like", ack.Action)
		assert.Equal(t, http.StatusOK, ack.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("LikeNotifiesTargetConnection", func(t *testing.T) {
		mockService := new(mockActivityService)
		hub := NewHub(mockService, slog.Default())

		mockService.On("AddLikeFromUser", mock.Anything, targetID, userID).
			Return(types.Success()).Once()

		server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
		defer server.Close()

		targetConn := dialWS(t, server.URL, targetID)
		likerConn := dialWS(t, server.URL, userID)

		// Registration happens just after the upgrade handshake completes.
		require.Eventually(t, func() bool {
			return hub.Registry().Count(targetID) == 1
		}, time.Second, 10*time.Millisecond)

		require.NoError(t, likerConn.WriteJSON(likeMessage{Action: "like", TargetID: targetID}))

		var n Notification
		require.NoError(t, targetConn.ReadJSON(&n))
		assert.Equal(t, "like", n.Type)
		assert.Equal(t, userID, n.FromID)
	})

	t.Run("RejectedLikeDoesNotNotify", func(t *testing.T) {
		mockService := new(mockActivityService)
		hub := NewHub(mockService, slog.Default())

		mockService.On("AddLikeFromUser", mock.Anything, targetID, userID).
			Return(types.Failure(http.StatusConflict, "already liked")).Once()

		server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
		defer server.Close()

		conn := dialWS(t, server.URL, userID)
		require.NoError(t, conn.WriteJSON(likeMessage{Action: "like", TargetID: targetID}))

		var ack ackMessage
		require.NoError(t, conn.ReadJSON(&ack))
		assert.Equal(t, http.StatusConflict, ack.StatusCode)
		assert.Equal(t, "already liked", ack.ErrorMessage)
	})

	t.Run("UnknownActionAcksBadRequest", func(t *testing.T) {
		mockService := new(mockActivityService)
		hub := NewHub(mockService, slog.Default())

		server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
		defer server.Close()

		conn := dialWS(t, server.URL, userID)
		require.NoError(t, conn.WriteJSON(likeMessage{Action: "poke", TargetID: targetID}))

		var ack ackMessage
		require.NoError(t, conn.ReadJSON(&ack))
		assert.Equal(t, http.StatusBadRequest, ack.StatusCode)
		mockService.AssertNotCalled(t, "AddLikeFromUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DisconnectUnregisters", func(t *testing.T) {
		hub := NewHub(new(mockActivityService), slog.Default())

		server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
		defer server.Close()

		conn := dialWS(t, server.URL, userID)
		require.Eventually(t, func() bool {
			return hub.Registry().Count(userID) == 1
		}, time.Second, 10*time.Millisecond)

		conn.Close()
		require.Eventually(t, func() bool {
			return hub.Registry().Count(userID) == 0
		}, time.Second, 10*time.Millisecond)
	})
}
