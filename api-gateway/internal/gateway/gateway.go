package gateway

import (
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MozaAdirafi/tabletap/httpx"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	MenuSvcURL      string
	OrderSvcURL     string
	AnalyticsSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Resolve picks the service that owns an API path.
//
//	/api/carts/...                          order-svc
//	/api/restaurants/{id}/orders...         order-svc
//	/api/restaurants/{id}/dashboard         analytics-svc
//	/api/restaurants/{id}/analytics/...     analytics-svc
//	/api/restaurants/{id}[/...]             menu-svc
func (g *Gateway) Resolve(path string) (string, bool) {
	if path == "/api/carts" || strings.HasPrefix(path, "/api/carts/") {
		return g.config.OrderSvcURL, true
	}

	rest, ok := strings.CutPrefix(path, "/api/restaurants/")
	if !ok {
		return "", false
	}
	parts := strings.Split(rest, "/")
	if parts[0] == "" {
		return "", false
	}
	if len(parts) == 1 {
		return g.config.MenuSvcURL, true
	}
	switch parts[1] {
	case "orders":
		return g.config.OrderSvcURL, true
	case "dashboard", "analytics":
		return g.config.AnalyticsSvcURL, true
	default:
		return g.config.MenuSvcURL, true
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	target, ok := g.Resolve(r.URL.Path)
	if !ok {
		log.Printf("[GATEWAY] unmatched API route: %s", r.URL.Path)
		httpx.RespondError(w, http.StatusNotFound, "API route not found", "")
		return
	}
	if IsWebSocketUpgrade(r) {
		g.BridgeWebSocket(w, r, target)
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log.Printf("[GATEWAY] %s %s -> %s", r.Method, r.URL.Path, targetURL)

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Printf("[GATEWAY] create request: %v", err)
		httpx.RespondError(w, http.StatusInternalServerError, "could not forward request", httpx.RecoveryRetry)
		return
	}
	for k, v := range r.Header {
		if isHopHeader(k) {
			continue
		}
		req.Header[k] = v
	}
	req.Header.Set("X-Forwarded-Host", r.Host)
	req.Header.Set("X-Forwarded-For", forwardedFor(r))

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[GATEWAY] proxy to %s: %v", targetURL, err)
		httpx.RespondError(w, http.StatusBadGateway, "service unavailable, please try again", httpx.RecoveryRetry)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		if isHopHeader(k) {
			continue
		}
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[GATEWAY] copy response: %v", err)
	}
}

func (g *Gateway) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, http.StatusNotFound, "route not found", "")
	})
	return r
}

// forwardedFor appends the caller's address to any X-Forwarded-For chain it
// sent, so services behind the gateway can tell customers apart.
func forwardedFor(r *http.Request) string {
	client, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		client = r.RemoteAddr
	}
	if prior := strings.Join(r.Header.Values("X-Forwarded-For"), ", "); prior != "" {
		return prior + ", " + client
	}
	return client
}

var hopHeaders = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

func isHopHeader(name string) bool {
	return hopHeaders[http.CanonicalHeaderKey(name)]
}
