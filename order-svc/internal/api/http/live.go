package httpapi

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/livesync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	clientBuffer = 256
)

type LiveFeed interface {
	Subscribe(ctx context.Context, scope livesync.Scope, onChange func(livesync.Update)) (func(), error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// liveClient is one websocket connection. Updates are queued without
// blocking the broker; a client that falls behind is disconnected and gets a
// fresh snapshot when it reconnects.
type liveClient struct {
	conn      *websocket.Conn
	send      chan livesync.Update
	done      chan struct{}
	closeOnce sync.Once
}

func newLiveClient(conn *websocket.Conn) *liveClient {
	return &liveClient{
		conn: conn,
		send: make(chan livesync.Update, clientBuffer),
		done: make(chan struct{}),
	}
}

func (c *liveClient) offer(update livesync.Update) {
	select {
	case <-c.done:
	case c.send <- update:
	default:
		log.Printf("[LIVE] client %s too slow, disconnecting", c.conn.RemoteAddr())
		c.close()
	}
}

func (c *liveClient) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *liveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case update := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(update); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}

// readPump only watches for the peer going away.
func (c *liveClient) readPump() {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.close()
			return
		}
	}
}

func (h *Handler) restaurantLive(w http.ResponseWriter, r *http.Request) {
	h.serveLive(w, r, livesync.Scope{RestaurantID: mux.Vars(r)["restaurantId"]})
}

func (h *Handler) orderLive(w http.ResponseWriter, r *http.Request) {
	restaurantID, orderID, ok := orderVars(w, r)
	if !ok {
		return
	}
	if _, err := h.Orders.Track(r.Context(), restaurantID, orderID, r.URL.Query().Get("token")); err != nil {
		writeError(w, err)
		return
	}
	h.serveLive(w, r, livesync.Scope{RestaurantID: restaurantID, OrderID: orderID})
}

func (h *Handler) serveLive(w http.ResponseWriter, r *http.Request, scope livesync.Scope) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[LIVE] upgrade: %v", err)
		return
	}
	client := newLiveClient(conn)
	go client.writePump()

	// The subscription outlives the upgrade request's context.
	cancel, err := h.Live.Subscribe(context.Background(), scope, client.offer)
	if err != nil {
		log.Printf("[LIVE] subscribe %s: %v", scope.RestaurantID, err)
		client.close()
		return
	}
	defer cancel()

	log.Printf("[LIVE] client %s subscribed to restaurant %s order %d", conn.RemoteAddr(), scope.RestaurantID, scope.OrderID)
	client.readPump()
}
