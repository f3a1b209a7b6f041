package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// Recovery hints tell the client where to send the user after a failure.
const (
	RecoveryScan  = "scan"
	RecoveryMenu  = "menu"
	RecoveryRetry = "retry"
)

type ErrorResponse struct {
	Error    string `json:"error"`
	Recovery string `json:"recovery,omitempty"`
}

func RespondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[HTTP] encode response: %v", err)
	}
}

func RespondError(w http.ResponseWriter, code int, message, recovery string) {
	RespondJSON(w, code, ErrorResponse{Error: message, Recovery: recovery})
}
