package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/MozaAdirafi/tabletap/httpx"
	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
)

var errInvalidBody = errors.New("invalid request body")

func writeError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation), errors.Is(err, errInvalidBody):
		httpx.RespondError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrTableNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error(), httpx.RecoveryScan)
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrCategoryNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error(), httpx.RecoveryMenu)
	case errors.Is(err, domain.ErrRestaurantNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrCategoryInUse),
		errors.Is(err, domain.ErrTableExists):
		httpx.RespondError(w, http.StatusConflict, err.Error(), "")
	default:
		log.Printf("[HTTP] internal error: %v", err)
		httpx.RespondError(w, http.StatusInternalServerError, "something went wrong, please try again", httpx.RecoveryRetry)
	}
}
