package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MozaAdirafi/tabletap/auth"
	"github.com/MozaAdirafi/tabletap/httpx"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders  service.OrderServiceInterface
	Carts   service.CartServiceInterface
	Live    LiveFeed
	Auth    *auth.Authenticator
	Limiter *httpx.RateLimiter
}

func NewHandler(orders service.OrderServiceInterface, carts service.CartServiceInterface, live LiveFeed, authenticator *auth.Authenticator, limiter *httpx.RateLimiter) *Handler {
	return &Handler{Orders: orders, Carts: carts, Live: live, Auth: authenticator, Limiter: limiter}
}

// placedOrder is the placement response. The access token is returned only
// here; the customer needs it to track or cancel the order.
type placedOrder struct {
	Order       *domain.Order `json:"order"`
	AccessToken string        `json:"access_token"`
}

// staffOrder adds the statuses the staff console may offer as next steps.
type staffOrder struct {
	domain.Order
	NextStatuses []domain.Status `json:"next_statuses"`
}

func newStaffOrder(order domain.Order) staffOrder {
	next := domain.NextStatuses(order.Status, domain.ActorStaff)
	if next == nil {
		next = []domain.Status{}
	}
	return staffOrder{Order: order, NextStatuses: next}
}

type statusRequest struct {
	Status  domain.Status `json:"status"`
	Version int           `json:"version"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"service":   "order-svc",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}).Methods("GET")

	orders := "/api/restaurants/{restaurantId}/orders"
	order := orders + "/{orderId:[0-9]+}"

	// staff
	r.HandleFunc(orders, h.Auth.RequireRestaurant(h.listOrders)).Methods("GET")
	r.HandleFunc(orders+"/live", h.Auth.RequireRestaurant(h.restaurantLive)).Methods("GET")
	r.HandleFunc(order, h.Auth.RequireRestaurant(h.getOrder)).Methods("GET")
	r.HandleFunc(order+"/status", h.Auth.RequireRestaurant(h.updateStatus)).Methods("PUT")
	r.HandleFunc(order, h.Auth.RequireRestaurant(h.deleteOrder)).Methods("DELETE")

	// customer
	r.HandleFunc(orders, h.limited(h.placeOrder)).Methods("POST")
	r.HandleFunc(order+"/track", h.trackOrder).Methods("GET")
	r.HandleFunc(order+"/cancel", h.cancelOrder).Methods("POST")
	r.HandleFunc(order+"/live", h.orderLive).Methods("GET")

	h.registerCartRoutes(r)
}

func (h *Handler) limited(next http.HandlerFunc) http.HandlerFunc {
	if h.Limiter == nil {
		return next
	}
	return h.Limiter.Limit(next)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	status := domain.Status(r.URL.Query().Get("status"))
	orders, err := h.Orders.List(r.Context(), mux.Vars(r)["restaurantId"], status)
	if err != nil {
		writeError(w, err)
		return
	}
	listed := make([]staffOrder, 0, len(orders))
	for _, order := range orders {
		listed = append(listed, newStaffOrder(order))
	}
	httpx.RespondJSON(w, http.StatusOK, listed)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	restaurantID, orderID, ok := orderVars(w, r)
	if !ok {
		return
	}
	order, err := h.Orders.Get(r.Context(), restaurantID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, newStaffOrder(*order))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	restaurantID, orderID, ok := orderVars(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	if req.Version < 1 {
		writeError(w, service.ErrVersionRequired)
		return
	}
	target, err := domain.ParseStatus(string(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.Orders.Transition(r.Context(), service.TransitionCommand{
		RestaurantID:    restaurantID,
		OrderID:         orderID,
		Target:          target,
		ExpectedVersion: req.Version,
		Actor:           domain.ActorStaff,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, newStaffOrder(*order))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	restaurantID, orderID, ok := orderVars(w, r)
	if !ok {
		return
	}
	if err := h.Orders.Delete(r.Context(), restaurantID, orderID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req service.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	req.RestaurantID = mux.Vars(r)["restaurantId"]

	order, err := h.Orders.Place(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, placedOrder{Order: order, AccessToken: order.AccessToken})
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	restaurantID, orderID, ok := orderVars(w, r)
	if !ok {
		return
	}
	order, err := h.Orders.Track(r.Context(), restaurantID, orderID, r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	restaurantID, orderID, ok := orderVars(w, r)
	if !ok {
		return
	}
	order, err := h.Orders.CustomerCancel(r.Context(), restaurantID, orderID, r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, order)
}

func orderVars(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	vars := mux.Vars(r)
	orderID, err := strconv.ParseInt(vars["orderId"], 10, 64)
	if err != nil || orderID < 1 {
		httpx.RespondError(w, http.StatusBadRequest, "invalid order id", "")
		return "", 0, false
	}
	return vars["restaurantId"], orderID, true
}
