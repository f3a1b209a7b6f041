package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MozaAdirafi/tabletap/api-gateway/internal/gateway"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLiveBackend echoes every frame with a prefix and rejects connections
// without a token or a forwarded client address.
func newLiveBackend(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "staff" {
			http.Error(w, `{"error":"missing token"}`, http.StatusUnauthorized)
			return
		}
		if r.Header.Get("X-Forwarded-For") == "" {
			http.Error(w, `{"error":"missing client address"}`, http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if err := conn.WriteMessage(websocket.TextMessage, []byte("snapshot:"+r.URL.Path)); err != nil {
			return
		}
		for {
			kind, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(kind, append([]byte("echo:"), message...)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newBridgedGateway(t *testing.T, backendURL string) *httptest.Server {
	t.Helper()
	gw := gateway.NewGateway(gateway.Config{OrderSvcURL: backendURL}, http.DefaultClient)
	server := httptest.NewServer(gw.SetupRoutes())
	t.Cleanup(server.Close)
	return server
}

func wsURL(server *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + path
}

func TestGateway_BridgesWebSocket(t *testing.T) {
	backend := newLiveBackend(t)
	gw := newBridgedGateway(t, backend.URL)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(gw, "/api/restaurants/rest-1/orders/live?access_token=staff"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "snapshot:/api/restaurants/rest-1/orders/live", string(message))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	_, message, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "echo:ping", string(message))
}

func TestGateway_WebSocketRejectionKeepsStatus(t *testing.T) {
	backend := newLiveBackend(t)
	gw := newBridgedGateway(t, backend.URL)

	_, res, err := websocket.DefaultDialer.Dial(wsURL(gw, "/api/restaurants/rest-1/orders/live"), nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGateway_WebSocketBackendDown(t *testing.T) {
	backend := newLiveBackend(t)
	backendURL := backend.URL
	backend.Close()
	gw := newBridgedGateway(t, backendURL)

	_, res, err := websocket.DefaultDialer.Dial(wsURL(gw, "/api/restaurants/rest-1/orders/live?access_token=staff"), nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
}
