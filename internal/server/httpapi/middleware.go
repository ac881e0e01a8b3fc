package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/linkkeeper/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// withAuth is the access guard: it extracts the bearer token from the
// Authorization header, verifies it, and injects the resolved user id into
// the request context. Any failure short-circuits with 401 before handler
// logic runs. The guard never lets a request past it on an error path.
func (s *HTTPServer) withAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			// Expired and malformed tokens are logged differently but are
			// indistinguishable to the client.
			s.logger.Warn(r.Context(), "token rejected", "reason", err.Error())
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the subject id stored by the access guard.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
