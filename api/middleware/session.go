package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/brunomacedo/vitrinezap-backend/pkg/config"
	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
	"github.com/brunomacedo/vitrinezap-backend/pkg/session"
)

const (
	sessionCookieName  = "vz_cart_session"
	sessionTokenHeader = "X-Cart-Session"
	storeIDHeader      = "X-Store-Id"
)

// CartSession resolves the shopper's cart session token from the request,
// minting a fresh one when it is absent or no longer valid. Storefront
// visitors are anonymous, so an unusable token is never an error: the
// visitor simply starts over with an empty cart.
func CartSession(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cartID, storeID := "", r.Header.Get(storeIDHeader)

			if raw := extractSessionToken(r); raw != "" {
				claims, err := session.Parse(cfg, raw)
				if err != nil {
					if logg != nil {
						fields := logg.WithFields(ctx, map[string]any{"error": err.Error()})
						logg.Warn(fields, "session.token_rejected")
					}
				} else {
					cartID = claims.CartID
					if storeID == "" {
						storeID = claims.StoreID
					}
				}
			}

			if cartID == "" {
				cartID = uuid.NewString()
				signed, err := session.Issue(cfg, cartID, storeID)
				if err != nil {
					if logg != nil {
						logg.Error(ctx, "session.issue_failed", err)
					}
				} else {
					http.SetCookie(w, &http.Cookie{
						Name:     sessionCookieName,
						Value:    signed,
						Path:     "/",
						MaxAge:   int(cfg.TTL().Seconds()),
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
					w.Header().Set(sessionTokenHeader, signed)
				}
			}

			ctx = WithCartID(ctx, cartID)
			if storeID != "" {
				ctx = WithStoreID(ctx, storeID)
			}
			if logg != nil {
				ctx = logg.WithCartID(ctx, cartID)
				if storeID != "" {
					ctx = logg.WithStoreID(ctx, storeID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractSessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if raw := r.Header.Get(sessionTokenHeader); raw != "" {
		return raw
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
