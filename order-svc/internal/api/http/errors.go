package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/MozaAdirafi/tabletap/httpx"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/cart"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/pricing"
	"github.com/MozaAdirafi/tabletap/order-svc/internal/service"
)

var errInvalidBody = errors.New("invalid request body")

func writeError(w http.ResponseWriter, err error) {
	var transition *domain.TransitionError
	switch {
	case errors.As(err, &transition):
		httpx.RespondError(w, http.StatusUnprocessableEntity, err.Error(), "")
	case errors.Is(err, service.ErrMissingContext):
		httpx.RespondError(w, http.StatusBadRequest, err.Error(), httpx.RecoveryScan)
	case errors.Is(err, service.ErrTableNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error(), httpx.RecoveryScan)
	case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrItemUnavailable):
		httpx.RespondError(w, http.StatusBadRequest, err.Error(), httpx.RecoveryMenu)
	case errors.Is(err, cart.ErrRestaurantMismatch):
		httpx.RespondError(w, http.StatusConflict, err.Error(), httpx.RecoveryMenu)
	case errors.Is(err, errInvalidBody),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrVersionRequired),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrNegativeTip),
		errors.Is(err, pricing.ErrNegativeTaxRate),
		errors.Is(err, domain.ErrInvalidStatus):
		httpx.RespondError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrOrderNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrStaleVersion):
		httpx.RespondError(w, http.StatusConflict, err.Error(), httpx.RecoveryRetry)
	case errors.Is(err, service.ErrForbidden):
		httpx.RespondError(w, http.StatusForbidden, err.Error(), "")
	default:
		log.Printf("[HTTP] internal error: %v", err)
		httpx.RespondError(w, http.StatusInternalServerError, "something went wrong, please try again", httpx.RecoveryRetry)
	}
}
