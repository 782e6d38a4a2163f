package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navkit/navd/internal/domain/registry"
	"github.com/navkit/navd/internal/domain/rendezvous"
	"github.com/navkit/navd/internal/domain/stack"
	"github.com/navkit/navd/internal/infrastructure/logging"
	"github.com/navkit/navd/internal/shared/types"
)

func newTestConn(t *testing.T) (*websocket.Conn, *stack.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stackMgr := stack.NewManager(types.Home())
	rz := rendezvous.NewManager(stackMgr)
	reg := registry.NewManager()
	require.NoError(t, registry.NewSeeder(reg, nil).Seed())

	handler := NewHandler(stackMgr, rz, reg, logging.NewNop())

	router := gin.New()
	router.GET("/stream", handler.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, stackMgr
}

// readUntil reads messages until one of the wanted type arrives. Snapshot
// and result messages may interleave depending on goroutine scheduling.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]interface{} {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))

	for {
		var msg map[string]interface{}
		require.NoError(t, conn.ReadJSON(&msg))
		if msg["type"] == msgType {
			return msg
		}
	}
}

func pagesOf(msg map[string]interface{}) []string {
	var kinds []string
	for _, p := range msg["pages"].([]interface{}) {
		kinds = append(kinds, p.(map[string]interface{})["kind"].(string))
	}
	return kinds
}

func TestStreamsInitialSnapshot(t *testing.T) {
	conn, _ := newTestConn(t)

	hello := readUntil(t, conn, "system")
	assert.Contains(t, hello["message"], "navd")

	snap := readUntil(t, conn, "snapshot")
	assert.Equal(t, float64(0), snap["seq"])
	assert.Equal(t, []string{"home"}, pagesOf(snap))
}

func TestPushStreamsSnapshotInOrder(t *testing.T) {
	conn, _ := newTestConn(t)
	readUntil(t, conn, "snapshot")

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": "push",
		"page": map[string]interface{}{"kind": "login"},
	}))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": "push",
		"page": map[string]interface{}{"kind": "profile", "user_id": "123"},
	}))

	snap := readUntil(t, conn, "snapshot")
	assert.Equal(t, float64(1), snap["seq"])
	assert.Equal(t, []string{"home", "login"}, pagesOf(snap))

	snap = readUntil(t, conn, "snapshot")
	assert.Equal(t, float64(2), snap["seq"])
	assert.Equal(t, []string{"home", "login", "profile"}, pagesOf(snap))
}

func TestPopResult(t *testing.T) {
	conn, _ := newTestConn(t)
	readUntil(t, conn, "snapshot")

	// Guarded pop on the root page
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "pop"}))
	res := readUntil(t, conn, "pop_result")
	assert.Equal(t, false, res["did_pop"])
}

func TestWaitForResultRoundTrip(t *testing.T) {
	conn, stackMgr := newTestConn(t)
	readUntil(t, conn, "snapshot")

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": "wait_for_result",
		"page": map[string]interface{}{"kind": "detail", "item_id": 42, "item_name": "Book"},
	}))

	snap := readUntil(t, conn, "snapshot")
	assert.Equal(t, []string{"home", "detail"}, pagesOf(snap))

	// The read loop is not blocked by the pending waiter
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "ping"}))
	readUntil(t, conn, "pong")

	value := true
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":  "return",
		"value": value,
	}))

	res := readUntil(t, conn, "result")
	assert.Equal(t, "resolved", res["outcome"])
	assert.Equal(t, true, res["value"])
	assert.Equal(t, "detail:42:Book", res["page_key"])

	require.Eventually(t, func() bool {
		return stackMgr.Len() == 1
	}, time.Second, time.Millisecond)
}

func TestInvalidCommandGetsError(t *testing.T) {
	conn, _ := newTestConn(t)
	readUntil(t, conn, "snapshot")

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "warp"}))
	msg := readUntil(t, conn, "error")
	assert.Contains(t, msg["message"], "unknown")

	// Push without a page is rejected, stack untouched
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "push"}))
	readUntil(t, conn, "error")
}
