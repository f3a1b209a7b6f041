package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MozaAdirafi/tabletap/httpx"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) registerCartRoutes(r *mux.Router) {
	carts := "/api/carts/{sessionId}"
	r.HandleFunc(carts, h.getCart).Methods("GET")
	r.HandleFunc(carts, h.clearCart).Methods("DELETE")
	r.HandleFunc(carts+"/items", h.addCartItem).Methods("PUT")
	r.HandleFunc(carts+"/items/{lineKey}", h.setCartQuantity).Methods("PATCH")
	r.HandleFunc(carts+"/items/{lineKey}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc(carts+"/checkout", h.limited(h.checkout)).Methods("POST")
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.Carts.Get(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	view, err := h.Carts.AddItem(r.Context(), mux.Vars(r)["sessionId"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	vars := mux.Vars(r)
	view, err := h.Carts.SetQuantity(r.Context(), vars["sessionId"], vars["lineKey"], req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := h.Carts.RemoveItem(r.Context(), vars["sessionId"], vars["lineKey"])
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), mux.Vars(r)["sessionId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	order, err := h.Carts.Checkout(r.Context(), mux.Vars(r)["sessionId"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, placedOrder{Order: order, AccessToken: order.AccessToken})
}
