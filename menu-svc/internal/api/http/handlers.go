package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MozaAdirafi/tabletap/auth"
	"github.com/MozaAdirafi/tabletap/httpx"
	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/menu-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Menu        service.MenuServiceInterface
	Tables      service.TableServiceInterface
	Auth        *auth.Authenticator
}

func NewHandler(restSvc service.RestaurantServiceInterface, menuSvc service.MenuServiceInterface, tableSvc service.TableServiceInterface, authenticator *auth.Authenticator) *Handler {
	return &Handler{
		Restaurants: restSvc,
		Menu:        menuSvc,
		Tables:      tableSvc,
		Auth:        authenticator,
	}
}

type restaurantRequest struct {
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	Description string           `json:"description"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	restaurant := "/api/restaurants/{restaurantId}"
	r.HandleFunc(restaurant, h.getRestaurant).Methods("GET")
	r.HandleFunc(restaurant, h.Auth.RequireRestaurant(h.updateRestaurant)).Methods("PUT")

	h.registerMenuRoutes(r, restaurant)
	h.registerTableRoutes(r, restaurant)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Get(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	rest := &domain.Restaurant{
		ID:          mux.Vars(r)["restaurantId"],
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
		TaxRate:     domain.DefaultTaxRate,
	}
	if req.TaxRate != nil {
		rest.TaxRate = *req.TaxRate
	}
	if err := h.Restaurants.Update(r.Context(), rest); err != nil {
		writeError(w, err)
		return
	}
	rest.Name = rest.DisplayName()
	httpx.RespondJSON(w, http.StatusOK, rest)
}
