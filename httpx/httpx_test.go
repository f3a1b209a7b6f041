package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRespondError(t *testing.T) {
	recorder := httptest.NewRecorder()
	RespondError(recorder, http.StatusBadRequest, "table is required", RecoveryScan)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "table is required", body.Error)
	assert.Equal(t, "scan", body.Recovery)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name   string
		header string
	}{
		{name: "generated", header: ""},
		{name: "propagated", header: "req-42"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if testCase.header != "" {
				req.Header.Set("X-Request-ID", testCase.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
			if testCase.header != "" {
				assert.Equal(t, testCase.header, seen)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	var deadline bool
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, deadline)

	upgrade := httptest.NewRequest(http.MethodGet, "/live", nil)
	upgrade.Header.Set("Connection", "Upgrade")
	upgrade.Header.Set("Upgrade", "websocket")
	handler.ServeHTTP(httptest.NewRecorder(), upgrade)
	assert.False(t, deadline)
}

func TestRateLimiter_Limit(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 2)
	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		recorder := httptest.NewRecorder()
		handler(recorder, req)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/orders", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	recorder := httptest.NewRecorder()
	handler(recorder, other)
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestRateLimiter_KeysOnForwardedClientBehindTrustedProxy(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	limiter := NewRateLimiter(rate.Every(2*time.Second), 2).WithTrustedProxies(trusted)
	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	send := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = remote
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		recorder := httptest.NewRecorder()
		handler(recorder, req)
		return recorder.Code
	}

	codes := []int{
		send("10.0.0.5:4000", "203.0.113.1"),
		send("10.0.0.5:4000", "203.0.113.2"),
		send("10.0.0.5:4000", "203.0.113.3"),
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusCreated}, codes)

	// a spoofed leftmost entry does not give the client a fresh bucket
	assert.Equal(t, http.StatusCreated, send("10.0.0.5:4000", "198.51.100.9, 203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.5:4000", "198.51.100.8, 203.0.113.1"))
}

func TestRateLimiter_IgnoresForwardedFromUntrustedPeer(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.5"})
	require.NoError(t, err)
	limiter := NewRateLimiter(rate.Every(time.Hour), 1).WithTrustedProxies(trusted)

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.RemoteAddr = "192.0.2.7:4000"
	req.Header.Set("X-Forwarded-For", "203.0.113.1")
	assert.Equal(t, "192.0.2.7", limiter.clientIP(req))

	req.RemoteAddr = "10.0.0.5:4000"
	assert.Equal(t, "203.0.113.1", limiter.clientIP(req))

	req.Header.Set("X-Forwarded-For", "10.0.0.5")
	assert.Equal(t, "10.0.0.5", limiter.clientIP(req))
}

func TestParseTrustedProxies(t *testing.T) {
	nets, err := ParseTrustedProxies([]string{"10.0.0.0/8", "127.0.0.1", "::1"})
	require.NoError(t, err)
	require.Len(t, nets, 3)

	_, err = ParseTrustedProxies([]string{"gateway"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"10.0.0.0/40"})
	assert.Error(t, err)
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 1)
	start := time.Now()

	limiter.getLimiter("10.0.0.1", start)
	limiter.getLimiter("10.0.0.2", start.Add(visitorIdle+2*time.Minute))
	limiter.getLimiter("10.0.0.3", start.Add(2*visitorIdle+4*time.Minute))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.3")
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer("127.0.0.1:0", http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "test", srv) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestCORS_AllowsStaffMethods(t *testing.T) {
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), time.Second)

	req := httptest.NewRequest(http.MethodOptions, "/api/restaurants/r1/orders/1/status", nil)
	req.Header.Set("Origin", "https://staff.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}
