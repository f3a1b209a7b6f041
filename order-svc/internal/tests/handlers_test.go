package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MozaAdirafi/tabletap/auth"
	"github.com/MozaAdirafi/tabletap/httpx"
	httpapi "github.com/MozaAdirafi/tabletap/order-svc/internal/api/http"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/mocks"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

func setupTestRouter(orders *mocks.OrderServiceInterface, carts *mocks.CartServiceInterface, limiter *httpx.RateLimiter) *mux.Router {
	handler := httpapi.NewHandler(orders, carts, nil, auth.NewAuthenticator(testSecret), limiter)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func staffToken(t *testing.T, restaurantID string) string {
	t.Helper()
	token, err := auth.NewAuthenticator(testSecret).IssueToken(restaurantID, time.Hour)
	require.NoError(t, err)
	return token
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) httpx.ErrorResponse {
	t.Helper()
	var body httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body
}

func TestHandler_placeOrder(t *testing.T) {
	tests := []struct {
		name             string
		payload          string
		prepareMocks     func(orders *mocks.OrderServiceInterface)
		expectedCode     int
		expectedRecovery string
	}{
		{
			name:    "success",
			payload: `{"table_id":"table-1","items":[{"menu_item_id":"item-a","quantity":2}],"total_amount":"0.01"}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Place", mock.Anything, mock.MatchedBy(func(req service.PlaceOrderRequest) bool {
					return req.RestaurantID == "rest-1" && req.TableID == "table-1" && len(req.Items) == 1
				})).Return(&domain.Order{ID: 1, RestaurantID: "rest-1", Status: domain.StatusPending, Version: 1, AccessToken: "secret-token"}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid_json",
			payload:      `{"items":`,
			prepareMocks: func(*mocks.OrderServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "missing_context",
			payload: `{"items":[{"menu_item_id":"item-a","quantity":1}]}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Place", mock.Anything, mock.Anything).Return(nil, service.ErrMissingContext).Once()
			},
			expectedCode:     http.StatusBadRequest,
			expectedRecovery: httpx.RecoveryScan,
		},
		{
			name:    "unknown_table",
			payload: `{"table_id":"table-9","items":[{"menu_item_id":"item-a","quantity":1}]}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Place", mock.Anything, mock.Anything).Return(nil, service.ErrTableNotFound).Once()
			},
			expectedCode:     http.StatusNotFound,
			expectedRecovery: httpx.RecoveryScan,
		},
		{
			name:    "empty_cart",
			payload: `{"table_id":"table-1","items":[]}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Place", mock.Anything, mock.Anything).Return(nil, service.ErrEmptyCart).Once()
			},
			expectedCode:     http.StatusBadRequest,
			expectedRecovery: httpx.RecoveryMenu,
		},
		{
			name:    "storage_failure",
			payload: `{"table_id":"table-1","items":[{"menu_item_id":"item-a","quantity":1}]}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Place", mock.Anything, mock.Anything).Return(nil, errors.New("save order: connection reset")).Once()
			},
			expectedCode:     http.StatusInternalServerError,
			expectedRecovery: httpx.RecoveryRetry,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderServiceInterface(t)
			testCase.prepareMocks(orders)
			router := setupTestRouter(orders, mocks.NewCartServiceInterface(t), nil)

			req := httptest.NewRequest(http.MethodPost, "/api/restaurants/rest-1/orders", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedCode == http.StatusCreated {
				var body struct {
					Order       map[string]interface{} `json:"order"`
					AccessToken string                 `json:"access_token"`
				}
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
				assert.Equal(t, "secret-token", body.AccessToken)
				assert.NotContains(t, body.Order, "access_token")
				return
			}
			assert.Equal(t, testCase.expectedRecovery, decodeError(t, recorder).Recovery)
		})
	}
}

func TestHandler_placeOrder_RateLimited(t *testing.T) {
	orders := mocks.NewOrderServiceInterface(t)
	orders.On("Place", mock.Anything, mock.Anything).
		Return(&domain.Order{ID: 1, Status: domain.StatusPending, Version: 1, AccessToken: "tok"}, nil).Once()
	router := setupTestRouter(orders, mocks.NewCartServiceInterface(t), httpx.NewRateLimiter(rate.Every(time.Hour), 1))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/restaurants/rest-1/orders",
			bytes.NewBufferString(`{"table_id":"table-1","items":[{"menu_item_id":"item-a","quantity":1}]}`))
		req.RemoteAddr = "10.1.1.1:4000"
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestHandler_updateStatus(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		payload      string
		prepareMocks func(orders *mocks.OrderServiceInterface)
		expectedCode int
	}{
		{
			name:    "success",
			token:   "rest-1",
			payload: `{"status":"preparing","version":1}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Transition", mock.Anything, service.TransitionCommand{
					RestaurantID: "rest-1", OrderID: 5, Target: domain.StatusPreparing, ExpectedVersion: 1, Actor: domain.ActorStaff,
				}).Return(&domain.Order{ID: 5, Status: domain.StatusPreparing, Version: 2}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing_token",
			payload:      `{"status":"preparing","version":1}`,
			prepareMocks: func(*mocks.OrderServiceInterface) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "other_restaurant",
			token:        "rest-2",
			payload:      `{"status":"preparing","version":1}`,
			prepareMocks: func(*mocks.OrderServiceInterface) {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "missing_version",
			token:        "rest-1",
			payload:      `{"status":"preparing"}`,
			prepareMocks: func(*mocks.OrderServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown_status",
			token:        "rest-1",
			payload:      `{"status":"served","version":1}`,
			prepareMocks: func(*mocks.OrderServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "stale_version",
			token:   "rest-1",
			payload: `{"status":"ready","version":1}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Transition", mock.Anything, mock.Anything).Return(nil, domain.ErrStaleVersion).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "illegal_transition",
			token:   "rest-1",
			payload: `{"status":"preparing","version":4}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Transition", mock.Anything, mock.Anything).
					Return(nil, &domain.TransitionError{From: domain.StatusDelivered, To: domain.StatusPreparing, Actor: domain.ActorStaff}).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:    "not_found",
			token:   "rest-1",
			payload: `{"status":"ready","version":1}`,
			prepareMocks: func(orders *mocks.OrderServiceInterface) {
				orders.On("Transition", mock.Anything, mock.Anything).Return(nil, domain.ErrOrderNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderServiceInterface(t)
			testCase.prepareMocks(orders)
			router := setupTestRouter(orders, mocks.NewCartServiceInterface(t), nil)

			req := httptest.NewRequest(http.MethodPut, "/api/restaurants/rest-1/orders/5/status", bytes.NewBufferString(testCase.payload))
			if testCase.token != "" {
				req.Header.Set("Authorization", "Bearer "+staffToken(t, testCase.token))
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_listOrders(t *testing.T) {
	orders := mocks.NewOrderServiceInterface(t)
	orders.On("List", mock.Anything, "rest-1", domain.StatusReady).
		Return([]domain.Order{{ID: 2, Status: domain.StatusReady}, {ID: 1, Status: domain.StatusReady}}, nil).Once()
	orders.On("List", mock.Anything, "rest-1", domain.Status("")).Return(nil, nil).Once()
	router := setupTestRouter(orders, mocks.NewCartServiceInterface(t), nil)
	token := staffToken(t, "rest-1")

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/rest-1/orders?status=ready", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var listed []struct {
		domain.Order
		NextStatuses []domain.Status `json:"next_statuses"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&listed))
	require.Len(t, listed, 2)
	assert.Equal(t, int64(2), listed[0].ID)
	assert.Equal(t, []domain.Status{domain.StatusDelivered, domain.StatusPreparing, domain.StatusCancelled}, listed[0].NextStatuses)

	req = httptest.NewRequest(http.MethodGet, "/api/restaurants/rest-1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestHandler_getOrder_OffersNextStatuses(t *testing.T) {
	orders := mocks.NewOrderServiceInterface(t)
	orders.On("Get", mock.Anything, "rest-1", int64(5)).Return(&domain.Order{ID: 5, Status: domain.StatusPreparing, Version: 2}, nil).Once()
	orders.On("Get", mock.Anything, "rest-1", int64(6)).Return(&domain.Order{ID: 6, Status: domain.StatusDelivered, Version: 4}, nil).Once()
	router := setupTestRouter(orders, mocks.NewCartServiceInterface(t), nil)

	tests := []struct {
		id       string
		expected []domain.Status
	}{
		{id: "5", expected: []domain.Status{domain.StatusReady, domain.StatusPending, domain.StatusCancelled}},
		{id: "6", expected: []domain.Status{}},
	}
	for _, testCase := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/restaurants/rest-1/orders/"+testCase.id, nil)
		req.Header.Set("Authorization", "Bearer "+staffToken(t, "rest-1"))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			ID           int64           `json:"id"`
			Version      int             `json:"version"`
			NextStatuses []domain.Status `json:"next_statuses"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
		assert.Equal(t, testCase.id, fmt.Sprint(body.ID))
		require.NotNil(t, body.NextStatuses, "order %s", testCase.id)
		assert.Equal(t, testCase.expected, body.NextStatuses, "order %s", testCase.id)
	}
}

func TestHandler_deleteOrder(t *testing.T) {
	orders := mocks.NewOrderServiceInterface(t)
	orders.On("Delete", mock.Anything, "rest-1", int64(5)).Return(nil).Once()
	orders.On("Delete", mock.Anything, "rest-1", int64(6)).Return(domain.ErrOrderNotFound).Once()
	router := setupTestRouter(orders, mocks.NewCartServiceInterface(t), nil)

	for id, code := range map[string]int{"5": http.StatusNoContent, "6": http.StatusNotFound} {
		req := httptest.NewRequest(http.MethodDelete, "/api/restaurants/rest-1/orders/"+id, nil)
		req.Header.Set("Authorization", "Bearer "+staffToken(t, "rest-1"))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, code, recorder.Code, "order %s", id)
	}
}

func TestHandler_customerRoutes(t *testing.T) {
	orders := mocks.NewOrderServiceInterface(t)
	orders.On("Track", mock.Anything, "rest-1", int64(5), "good").Return(&domain.Order{ID: 5, Status: domain.StatusPending}, nil).Once()
	orders.On("Track", mock.Anything, "rest-1", int64(5), "bad").Return(nil, service.ErrForbidden).Once()
	orders.On("CustomerCancel", mock.Anything, "rest-1", int64(5), "good").
		Return(&domain.Order{ID: 5, Status: domain.StatusCancelled, Version: 2}, nil).Once()
	orders.On("CustomerCancel", mock.Anything, "rest-1", int64(6), "good").
		Return(nil, &domain.TransitionError{From: domain.StatusPreparing, To: domain.StatusCancelled, Actor: domain.ActorCustomer}).Once()
	router := setupTestRouter(orders, mocks.NewCartServiceInterface(t), nil)

	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/api/restaurants/rest-1/orders/5/track?token=good", http.StatusOK},
		{http.MethodGet, "/api/restaurants/rest-1/orders/5/track?token=bad", http.StatusForbidden},
		{http.MethodPost, "/api/restaurants/rest-1/orders/5/cancel?token=good", http.StatusOK},
		{http.MethodPost, "/api/restaurants/rest-1/orders/6/cancel?token=good", http.StatusUnprocessableEntity},
	}
	for _, testCase := range tests {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(testCase.method, testCase.path, nil))
		assert.Equal(t, testCase.code, recorder.Code, testCase.path)
	}
}

func TestHandler_cartRoutes(t *testing.T) {
	carts := mocks.NewCartServiceInterface(t)
	view := &service.CartView{SessionID: "s-1", RestaurantID: "rest-1", ItemCount: 2, Subtotal: dec("20")}
	carts.On("Get", mock.Anything, "s-1").Return(view, nil).Once()
	carts.On("AddItem", mock.Anything, "s-1", service.AddItemRequest{RestaurantID: "rest-1", MenuItemID: "item-a", Quantity: 2}).
		Return(view, nil).Once()
	carts.On("SetQuantity", mock.Anything, "s-1", "item-a", 3).Return(view, nil).Once()
	carts.On("RemoveItem", mock.Anything, "s-1", "item-a").Return(view, nil).Once()
	carts.On("Clear", mock.Anything, "s-1").Return(nil).Once()
	carts.On("Checkout", mock.Anything, "s-1", service.CheckoutRequest{RestaurantID: "rest-1", TableID: "table-1"}).
		Return(&domain.Order{ID: 9, Status: domain.StatusPending, Version: 1, AccessToken: "tok-9"}, nil).Once()
	carts.On("Checkout", mock.Anything, "s-2", mock.Anything).Return(nil, service.ErrEmptyCart).Once()
	router := setupTestRouter(mocks.NewOrderServiceInterface(t), carts, nil)

	tests := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{http.MethodGet, "/api/carts/s-1", "", http.StatusOK},
		{http.MethodPut, "/api/carts/s-1/items", `{"restaurant_id":"rest-1","menu_item_id":"item-a","quantity":2}`, http.StatusOK},
		{http.MethodPatch, "/api/carts/s-1/items/item-a", `{"quantity":3}`, http.StatusOK},
		{http.MethodPatch, "/api/carts/s-1/items/item-a", `{"quantity":`, http.StatusBadRequest},
		{http.MethodDelete, "/api/carts/s-1/items/item-a", "", http.StatusOK},
		{http.MethodDelete, "/api/carts/s-1", "", http.StatusNoContent},
		{http.MethodPost, "/api/carts/s-1/checkout", `{"restaurant_id":"rest-1","table_id":"table-1"}`, http.StatusCreated},
		{http.MethodPost, "/api/carts/s-2/checkout", `{"restaurant_id":"rest-1","table_id":"table-1"}`, http.StatusBadRequest},
	}
	for _, testCase := range tests {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(testCase.method, testCase.path, bytes.NewBufferString(testCase.body)))
		assert.Equal(t, testCase.code, recorder.Code, "%s %s", testCase.method, testCase.path)
	}
}
