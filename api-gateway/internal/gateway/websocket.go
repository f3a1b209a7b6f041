package gateway

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/MozaAdirafi/tabletap/httpx"

	"github.com/gorilla/websocket"
)

const dialTimeout = 10 * time.Second

var (
	bridgeUpgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// order-svc authorizes the feed; the gateway only relays frames
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	bridgeDialer = &websocket.Dialer{
		HandshakeTimeout: dialTimeout,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
)

// forwarded upgrade headers; the dialer writes its own handshake headers
var dialHeaders = []string{"Authorization", "Cookie", "Origin", "X-Request-Id"}

func IsWebSocketUpgrade(r *http.Request) bool {
	return websocket.IsWebSocketUpgrade(r)
}

func websocketURL(targetURL string, r *http.Request) string {
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	if rest, ok := strings.CutPrefix(url, "https://"); ok {
		return "wss://" + rest
	}
	if rest, ok := strings.CutPrefix(url, "http://"); ok {
		return "ws://" + rest
	}
	return url
}

// BridgeWebSocket dials the backend first so a rejected handshake (401, 403,
// 404) reaches the client with its original status. Once both sides are
// connected, frames are relayed until either side closes.
func (g *Gateway) BridgeWebSocket(w http.ResponseWriter, r *http.Request, targetURL string) {
	header := http.Header{}
	for _, name := range dialHeaders {
		if v := r.Header.Get(name); v != "" {
			header.Set(name, v)
		}
	}
	header.Set("X-Forwarded-For", forwardedFor(r))

	url := websocketURL(targetURL, r)
	backend, resp, err := bridgeDialer.DialContext(r.Context(), url, header)
	if err != nil {
		if resp != nil {
			relayRejection(w, resp)
			return
		}
		log.Printf("[GATEWAY] websocket dial %s: %v", url, err)
		httpx.RespondError(w, http.StatusBadGateway, "live updates unavailable, please try again", httpx.RecoveryRetry)
		return
	}
	defer backend.Close()

	client, err := bridgeUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[GATEWAY] websocket upgrade: %v", err)
		return
	}
	defer client.Close()

	log.Printf("[GATEWAY] websocket %s -> %s", r.URL.Path, targetURL)
	errc := make(chan error, 2)
	go relay(client, backend, errc)
	go relay(backend, client, errc)
	<-errc
}

func relayRejection(w http.ResponseWriter, resp *http.Response) {
	defer resp.Body.Close()
	for k, v := range resp.Header {
		if isHopHeader(k) {
			continue
		}
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

// relay copies frames from src to dst. A close frame from src is passed on
// to dst before relay returns.
func relay(dst, src *websocket.Conn, errc chan<- error) {
	for {
		kind, message, err := src.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				payload := websocket.FormatCloseMessage(closeErr.Code, closeErr.Text)
				if closeErr.Code == websocket.CloseNoStatusReceived {
					payload = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
				}
				dst.WriteControl(websocket.CloseMessage, payload, time.Now().Add(time.Second))
			}
			errc <- err
			return
		}
		if err := dst.WriteMessage(kind, message); err != nil {
			errc <- err
			return
		}
	}
}
