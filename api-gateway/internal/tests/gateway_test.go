package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MozaAdirafi/tabletap/api-gateway/internal/gateway"
	"github.com/MozaAdirafi/tabletap/api-gateway/internal/mocks"
	"github.com/MozaAdirafi/tabletap/httpx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = gateway.Config{
	MenuSvcURL:      "http://menu-svc",
	OrderSvcURL:     "http://order-svc",
	AnalyticsSvcURL: "http://analytics-svc",
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_Resolve(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil)

	tests := []struct {
		path     string
		expected string
		found    bool
	}{
		{path: "/api/restaurants/rest-1", expected: "http://menu-svc", found: true},
		{path: "/api/restaurants/rest-1/menu", expected: "http://menu-svc", found: true},
		{path: "/api/restaurants/rest-1/scan", expected: "http://menu-svc", found: true},
		{path: "/api/restaurants/rest-1/tables/t-1/qrcode", expected: "http://menu-svc", found: true},
		{path: "/api/restaurants/rest-1/orders", expected: "http://order-svc", found: true},
		{path: "/api/restaurants/rest-1/orders/live", expected: "http://order-svc", found: true},
		{path: "/api/restaurants/rest-1/orders/7/track", expected: "http://order-svc", found: true},
		{path: "/api/carts/session-1/checkout", expected: "http://order-svc", found: true},
		{path: "/api/restaurants/rest-1/dashboard", expected: "http://analytics-svc", found: true},
		{path: "/api/restaurants/rest-1/analytics/popular-items", expected: "http://analytics-svc", found: true},
		{path: "/api/restaurants/", found: false},
		{path: "/api/restaurants", found: false},
		{path: "/api/unknown", found: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			target, ok := gw.Resolve(testCase.path)
			assert.Equal(t, testCase.found, ok)
			assert.Equal(t, testCase.expected, target)
		})
	}
}

func TestGateway_RouteHandler_ForwardsRequest(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	forwarded := mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPut &&
			req.URL.String() == "http://order-svc/api/restaurants/rest-1/orders/7/status?dry=1" &&
			req.Header.Get("Authorization") == "Bearer staff" &&
			req.Header.Get("Connection") == ""
	})
	mockClient.On("Do", forwarded).Return(okResponse(`{"status":"preparing"}`), nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/api/restaurants/rest-1/orders/7/status?dry=1", strings.NewReader(`{"status":"preparing","version":1}`))
	req.Header.Set("Authorization", "Bearer staff")
	req.Header.Set("Connection", "keep-alive")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "preparing")
}

func TestGateway_RouteHandler_AppendsForwardedFor(t *testing.T) {
	tests := []struct {
		name     string
		prior    string
		expected string
	}{
		{name: "direct_client", expected: "203.0.113.7"},
		{name: "behind_load_balancer", prior: "198.51.100.2", expected: "198.51.100.2, 203.0.113.7"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(testConfig, mockClient)

			forwarded := mock.MatchedBy(func(req *http.Request) bool {
				return req.Header.Get("X-Forwarded-For") == testCase.expected
			})
			mockClient.On("Do", forwarded).Return(okResponse(`{}`), nil).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/carts/session-1/checkout", strings.NewReader(`{}`))
			req.RemoteAddr = "203.0.113.7:51000"
			if testCase.prior != "" {
				req.Header.Set("X-Forwarded-For", testCase.prior)
			}
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestGateway_RouteHandler_PassesBackendStatus(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	resp := okResponse(`{"error":"table not found","recovery":"scan"}`)
	resp.StatusCode = http.StatusNotFound
	mockClient.On("Do", mock.Anything).Return(resp, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/rest-1/scan?table=99", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"recovery":"scan"`)
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/rest-1/menu", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	var body httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, httpx.RecoveryRetry, body.Recovery)
}

func TestGateway_SetupRoutes_NotFound(t *testing.T) {
	router := gateway.NewGateway(testConfig, nil).SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
