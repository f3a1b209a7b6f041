package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MozaAdirafi/tabletap/httpx"
	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"

	"github.com/gorilla/mux"
)

type tableRequest struct {
	Number int `json:"number"`
}

func (h *Handler) registerTableRoutes(r *mux.Router, restaurant string) {
	tables := restaurant + "/tables"
	table := tables + "/{tableId}"

	r.HandleFunc(restaurant+"/scan", h.scan).Methods("GET")
	r.HandleFunc(table, h.getTable).Methods("GET")
	r.HandleFunc(table+"/qrcode", h.getTableQRCode).Methods("GET")

	// staff
	r.HandleFunc(tables, h.Auth.RequireRestaurant(h.listTables)).Methods("GET")
	r.HandleFunc(tables, h.Auth.RequireRestaurant(h.createTable)).Methods("POST")
	r.HandleFunc(table, h.Auth.RequireRestaurant(h.deleteTable)).Methods("DELETE")
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Tables.List(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if tables == nil {
		tables = []domain.Table{}
	}
	httpx.RespondJSON(w, http.StatusOK, tables)
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	table, err := h.Tables.Get(r.Context(), vars["restaurantId"], vars["tableId"])
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, table)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	table := &domain.Table{RestaurantID: mux.Vars(r)["restaurantId"], Number: req.Number}
	if err := h.Tables.Create(r.Context(), table); err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, table)
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Tables.Delete(r.Context(), vars["restaurantId"], vars["tableId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	png, err := h.Tables.QRCode(r.Context(), vars["restaurantId"], vars["tableId"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.URL.Query().Get("table"))
	if err != nil || number < 1 {
		httpx.RespondError(w, http.StatusBadRequest, "invalid table number", httpx.RecoveryScan)
		return
	}
	result, err := h.Tables.Scan(r.Context(), mux.Vars(r)["restaurantId"], number)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, result)
}
