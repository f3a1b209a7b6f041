package httpx

import (
	"net/http"
	"time"

	"github.com/rs/cors"
)

// CORS allows the customer and staff web apps to call any service directly.
func CORS(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler(next)
}

// Chain wraps a router in the middleware stack every service uses.
func Chain(router http.Handler, requestTimeout time.Duration) http.Handler {
	return RequestID(Logger(CORS(Timeout(requestTimeout)(router))))
}
