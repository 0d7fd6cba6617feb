package handler

import (
	"context"
	"net/http"

	"fsanano/catalog-api/internal/auth"
	"fsanano/catalog-api/internal/logging"
)

// TokenHeader carries the auth token on cart requests.
const TokenHeader = "auth-token"

type ctxKey string

const userIDKey ctxKey = "userID"

// RequireUser rejects requests without a valid token before they reach the
// wrapped handler, and stores the verified user id in the request context.
func RequireUser(tokens auth.Issuer, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := tokens.Verify(r.Header.Get(TokenHeader))
			if err != nil {
				log.Debug(r.Context(), "token rejected", "error", err)
				writeJSON(w, http.StatusUnauthorized, resultResponse{Errors: "Please authenticate using a valid token"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
