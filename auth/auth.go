package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/MozaAdirafi/tabletap/httpx"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

type contextKey string

const restaurantKey contextKey = "restaurantId"

// Claims identify a signed-in staff principal. The principal id doubles as
// the restaurant (tenant) key.
type Claims struct {
	RestaurantID string `json:"restaurantId"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

func (a *Authenticator) IssueToken(restaurantID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RestaurantID: restaurantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   restaurantID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.RestaurantID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequireRestaurant authenticates the caller and checks that the token's
// restaurant matches the {restaurantId} route variable.
func (a *Authenticator) RequireRestaurant(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.Parse(tokenFromRequest(r))
		if err != nil {
			httpx.RespondError(w, http.StatusUnauthorized, err.Error(), "")
			return
		}
		if rid, ok := mux.Vars(r)["restaurantId"]; ok && rid != claims.RestaurantID {
			httpx.RespondError(w, http.StatusForbidden, "restaurant access denied", "")
			return
		}
		ctx := context.WithValue(r.Context(), restaurantKey, claims.RestaurantID)
		next(w, r.WithContext(ctx))
	}
}

func RestaurantFromContext(ctx context.Context) (string, bool) {
	rid, ok := ctx.Value(restaurantKey).(string)
	return rid, ok && rid != ""
}

// Browsers cannot set headers on websocket upgrades, so upgrades may carry
// the token in the access_token query parameter.
func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	if websocket.IsWebSocketUpgrade(r) {
		return r.URL.Query().Get("access_token")
	}
	return ""
}
