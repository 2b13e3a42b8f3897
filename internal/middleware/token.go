package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hongminglow/stockroom/internal/http/respond"
	"github.com/hongminglow/stockroom/internal/models"
)

type userKey struct{}

// Authenticator resolves a raw token to its user.
type Authenticator func(token string) (models.User, error)

// RequireToken rejects requests without a valid "Authorization: Token <t>"
// header and stores the user in the request context.
func RequireToken(authenticate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := TokenFromHeader(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}
			user, err := authenticate(token)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "Invalid token.")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
		})
	}
}

// TokenFromHeader extracts the token from the Authorization header.
func TokenFromHeader(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	token, found := strings.CutPrefix(header, "Token ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// UserFrom returns the user RequireToken attached.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}
