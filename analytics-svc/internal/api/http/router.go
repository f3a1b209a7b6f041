package httpapi

import (
	"net/http"
	"time"

	"github.com/MozaAdirafi/tabletap/httpx"

	"github.com/gorilla/mux"
)

func NewRouter(handler *Handler, requestTimeout time.Duration) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return httpx.Chain(r, requestTimeout)
}
