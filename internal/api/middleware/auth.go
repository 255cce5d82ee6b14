package middleware

import (
	"context"
	"errors"
	"net/http"

	"brain_arcade/internal/common"
	"brain_arcade/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UsernameCtxKey contextKey = "username"
)

// Authenticator is the auth gate for protected routes. jwtauth.Verifier
// must run earlier in the chain; it parses the bearer token into the
// request context, and this middleware turns any verification failure into
// a 401 before a handler sees the request.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			switch {
			case errors.Is(err, jwtauth.ErrNoTokenFound):
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			case errors.Is(err, jwtauth.ErrExpired):
				common.RespondWithError(w, http.StatusUnauthorized, "Token expired")
			default:
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		username, _ := security.GetUsernameFromClaims(claims)

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UsernameCtxKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}
