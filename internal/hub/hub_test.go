package hub_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yen-network/internal/dto"
	wshandler "yen-network/internal/handler/websocket"
	"yen-network/internal/hub"
	"yen-network/internal/middleware"
)

func newFeedServer(t *testing.T, h *hub.Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/:user", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, c.Param("user"))
		c.Next()
	}, wshandler.NewWebSocketHandler(h, nil).NotificationFeed)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + userID
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, h *hub.Hub, userID string, want int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount(userID) == want }, 2*time.Second, 10*time.Millisecond)
}

func TestDeliverReachesOnlyTargetUser(t *testing.T) {
	h := hub.NewHub()
	go h.Run()
	defer h.Stop()
	srv := newFeedServer(t, h)

	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")
	waitForClients(t, h, "alice", 1)
	waitForClients(t, h, "bob", 1)

	require.True(t, h.Deliver("alice", []byte(`{"kind":"idea_funded"}`)))

	_ = alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := alice.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"idea_funded"}`, string(msg))

	_ = bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err, "bob should not receive alice's notification")
}

func TestDeliverFansOutToEveryClientOfUser(t *testing.T) {
	h := hub.NewHub()
	go h.Run()
	defer h.Stop()
	srv := newFeedServer(t, h)

	first := dial(t, srv, "amaka")
	second := dial(t, srv, "amaka")
	waitForClients(t, h, "amaka", 2)

	require.True(t, h.Deliver("amaka", []byte(`"ping"`)))
	for _, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, `"ping"`, string(msg))
	}
}

func TestDeliverWithoutClients(t *testing.T) {
	h := hub.NewHub()
	go h.Run()
	defer h.Stop()

	assert.False(t, h.Deliver("nobody", []byte("x")))
}

func TestClientUnregistersOnClose(t *testing.T) {
	h := hub.NewHub()
	go h.Run()
	defer h.Stop()
	srv := newFeedServer(t, h)

	conn := dial(t, srv, "carol")
	waitForClients(t, h, "carol", 1)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()
	waitForClients(t, h, "carol", 0)
}

// fillQueue occupies every slot of a hub that is not running yet.
func fillQueue(h *hub.Hub) {
	for h.QueueMessage(hub.HubMessage{Type: "deliver", UserID: "nobody"}) {
	}
}

func TestUnregisterWaitsForRoomOnFullQueue(t *testing.T) {
	h := hub.NewHub()
	defer h.Stop()
	client := hub.NewClient(h, nil, "erin")
	require.True(t, h.Register(client))
	fillQueue(h)

	unregistered := make(chan bool, 1)
	go func() { unregistered <- h.Unregister(client) }()

	select {
	case <-unregistered:
		t.Fatal("Unregister returned before the hub had room")
	case <-time.After(50 * time.Millisecond):
	}

	go h.Run()
	select {
	case ok := <-unregistered:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("Unregister never completed")
	}
	waitForClients(t, h, "erin", 0)
}

func TestUnregisterReturnsWhenHubStops(t *testing.T) {
	h := hub.NewHub()
	client := hub.NewClient(h, nil, "frank")
	fillQueue(h)

	unregistered := make(chan bool, 1)
	go func() { unregistered <- h.Unregister(client) }()
	h.Stop()

	select {
	case ok := <-unregistered:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("Unregister blocked after Stop")
	}
}

func TestStopClosesClients(t *testing.T) {
	h := hub.NewHub()
	go h.Run()
	srv := newFeedServer(t, h)

	conn := dial(t, srv, "dave")
	waitForClients(t, h, "dave", 1)

	h.Stop()
	h.Stop()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	waitForClients(t, h, "dave", 0)
	assert.False(t, h.Register(hub.NewClient(h, nil, "late")))
}

func TestFeedRejectsWhenHubStopped(t *testing.T) {
	h := hub.NewHub()
	go h.Run()
	h.Stop()
	srv := newFeedServer(t, h)

	conn := dial(t, srv, "erin")
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg dto.FeedMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, dto.TypeError, msg.Type)
}
