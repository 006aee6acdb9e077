package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gigflow_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newWSServer(t *testing.T, m *Manager) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewWebSocketHandler(m, DefaultClientConfig(), nil)
	r := gin.New()
	r.GET("/ws", h.ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
}

func TestServeWS_PushesNotificationFrames(t *testing.T) {
	m := NewManager(stubVerifier{"tok": "alice"}, 16)
	srv := newWSServer(t, m)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token=tok"), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return m.IsUserConnected("alice") }, time.Second, 5*time.Millisecond)

	n := notification("alice", "n-1")
	n.Type = models.NotificationTypeBidPlaced
	n.Message = "New bid"
	n.Data = datatypes.JSON(`{"bidId":"b","gigId":"g","gigTitle":"Logo","price":10}`)
	n.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.Publish(n)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame struct {
		Event string `json:"event"`
		Data  struct {
			ID        string                 `json:"id"`
			Type      string                 `json:"type"`
			Message   string                 `json:"message"`
			Data      map[string]interface{} `json:"data"`
			Timestamp time.Time              `json:"timestamp"`
			Read      bool                   `json:"read"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &frame))

	assert.Equal(t, EventNotification, frame.Event)
	assert.Equal(t, "n-1", frame.Data.ID)
	assert.Equal(t, models.NotificationTypeBidPlaced, frame.Data.Type)
	assert.Equal(t, "Logo", frame.Data.Data["gigTitle"])
	assert.False(t, frame.Data.Read)
	assert.True(t, frame.Data.Timestamp.Equal(n.CreatedAt))
}

func TestServeWS_ClientCloseDisconnectsSession(t *testing.T) {
	m := NewManager(stubVerifier{"tok": "alice"}, 16)
	srv := newWSServer(t, m)

	header := http.Header{}
	header.Set("Authorization", "Bearer tok")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), header)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return m.IsUserConnected("alice") }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	require.Eventually(t, func() bool { return !m.IsUserConnected("alice") }, time.Second, 5*time.Millisecond)
}

func TestServeWS_RejectsMissingCredential(t *testing.T) {
	m := NewManager(stubVerifier{"tok": "alice"}, 16)
	srv := newWSServer(t, m)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token=bad"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCredentialFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?token=q", nil)
	r.Header.Set("Authorization", "Bearer h")
	r.AddCookie(&http.Cookie{Name: "token", Value: "c"})
	assert.Equal(t, "q", CredentialFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Authorization", "Bearer h")
	r.AddCookie(&http.Cookie{Name: "token", Value: "c"})
	assert.Equal(t, "h", CredentialFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "c"})
	assert.Equal(t, "c", CredentialFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.Empty(t, CredentialFromRequest(r))
}
