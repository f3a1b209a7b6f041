package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MozaAdirafi/tabletap/httpx"
	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type itemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id"`
	Tags        []string        `json:"tags"`
	Available   *bool           `json:"available"`
}

// New items are available unless the request says otherwise.
func (req itemRequest) toItem(restaurantID string) *domain.MenuItem {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &domain.MenuItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CategoryID:   req.CategoryID,
		Tags:         req.Tags,
		Available:    available,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) registerMenuRoutes(r *mux.Router, restaurant string) {
	items := restaurant + "/items"
	item := items + "/{itemId}"
	categories := restaurant + "/categories"

	r.HandleFunc(restaurant+"/menu", h.getMenu).Methods("GET")
	r.HandleFunc(items, h.listItems).Methods("GET")
	r.HandleFunc(item, h.getItem).Methods("GET")
	r.HandleFunc(categories, h.listCategories).Methods("GET")

	// staff
	r.HandleFunc(items, h.Auth.RequireRestaurant(h.createItem)).Methods("POST")
	r.HandleFunc(item, h.Auth.RequireRestaurant(h.updateItem)).Methods("PUT")
	r.HandleFunc(item, h.Auth.RequireRestaurant(h.deleteItem)).Methods("DELETE")
	r.HandleFunc(categories, h.Auth.RequireRestaurant(h.createCategory)).Methods("POST")
	r.HandleFunc(categories+"/{categoryId}", h.Auth.RequireRestaurant(h.deleteCategory)).Methods("DELETE")
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Menu.Menu(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, menu)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListItems(r.Context(), mux.Vars(r)["restaurantId"], r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	httpx.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	item, err := h.Menu.GetItem(r.Context(), vars["restaurantId"], vars["itemId"])
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	item := req.toItem(mux.Vars(r)["restaurantId"])
	if err := h.Menu.CreateItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	item := req.toItem(vars["restaurantId"])
	item.ID = vars["itemId"]
	if err := h.Menu.UpdateItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Menu.DeleteItem(r.Context(), vars["restaurantId"], vars["itemId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.ListCategories(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []domain.MenuCategory{}
	}
	httpx.RespondJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	category := &domain.MenuCategory{
		RestaurantID: mux.Vars(r)["restaurantId"],
		Name:         req.Name,
		Description:  req.Description,
	}
	if err := h.Menu.CreateCategory(r.Context(), category); err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Menu.DeleteCategory(r.Context(), vars["restaurantId"], vars["categoryId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
