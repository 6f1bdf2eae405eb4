package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brunomacedo/vitrinezap-backend/pkg/config"
)

// CartClaims identify one anonymous storefront session: a stable cart id
// plus the store the session was opened against.
type CartClaims struct {
	jwt.RegisteredClaims
	CartID  string `json:"cart_id"`
	StoreID string `json:"store_id,omitempty"`
}

// Issue signs a cart session token.
func Issue(cfg config.SessionConfig, cartID, storeID string) (string, error) {
	if cartID == "" {
		return "", fmt.Errorf("cart id required")
	}
	now := time.Now()
	claims := CartClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   cartID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL())),
		},
		CartID:  cartID,
		StoreID: storeID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing cart session: %w", err)
	}
	return signed, nil
}

// Parse validates a cart session token and returns its claims.
func Parse(cfg config.SessionConfig, raw string) (*CartClaims, error) {
	claims := &CartClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parsing cart session: %w", err)
	}
	if !token.Valid || claims.CartID == "" {
		return nil, fmt.Errorf("invalid cart session")
	}
	return claims, nil
}
