package httpapi

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/service"
	"github.com/MozaAdirafi/tabletap/auth"
	"github.com/MozaAdirafi/tabletap/httpx"

	"github.com/gorilla/mux"
)

const (
	defaultTop = 5
	maxTop     = 50
)

type Handler struct {
	Analytics service.DashboardServiceInterface
	Auth      *auth.Authenticator
	// Location is used when the client sends no tz.
	Location *time.Location
}

func NewHandler(svc service.DashboardServiceInterface, authenticator *auth.Authenticator, loc *time.Location) *Handler {
	return &Handler{Analytics: svc, Auth: authenticator, Location: loc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"service":   "analytics-svc",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}).Methods("GET")

	restaurant := "/api/restaurants/{restaurantId}"
	r.HandleFunc(restaurant+"/dashboard", h.Auth.RequireRestaurant(h.getDashboard)).Methods("GET")
	r.HandleFunc(restaurant+"/analytics/popular-items", h.Auth.RequireRestaurant(h.getPopularItems)).Methods("GET")
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	loc := h.Location
	if tz := r.URL.Query().Get("tz"); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unknown time zone %q", tz), "")
			return
		}
	}
	top, ok := parseTop(w, r)
	if !ok {
		return
	}

	dashboard, err := h.Analytics.Dashboard(r.Context(), mux.Vars(r)["restaurantId"], loc, top)
	if err != nil {
		internalError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) getPopularItems(w http.ResponseWriter, r *http.Request) {
	top, ok := parseTop(w, r)
	if !ok {
		return
	}
	items, err := h.Analytics.PopularItems(r.Context(), mux.Vars(r)["restaurantId"], top)
	if err != nil {
		internalError(w, err)
		return
	}
	if items == nil {
		items = []domain.PopularItem{}
	}
	httpx.RespondJSON(w, http.StatusOK, items)
}

func parseTop(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("top")
	if raw == "" {
		return defaultTop, true
	}
	top, err := strconv.Atoi(raw)
	if err != nil || top < 1 || top > maxTop {
		httpx.RespondError(w, http.StatusBadRequest, fmt.Sprintf("top must be between 1 and %d", maxTop), "")
		return 0, false
	}
	return top, true
}

func internalError(w http.ResponseWriter, err error) {
	log.Printf("[HTTP] internal error: %v", err)
	httpx.RespondError(w, http.StatusInternalServerError, "could not load analytics, please try again", httpx.RecoveryRetry)
}
