package middleware

import (
	"net/http"
	"strings"

	"tasknest/tasks-service/handlers"
	"tasknest/tasks-service/logging"
	"tasknest/tasks-service/utils"
)

// JWTAuthMiddleware rejects requests without a valid bearer token. The
// core operations only see requests that passed; the policy itself lives
// here, outside them.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			handlers.WriteDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if _, err := utils.ValidateToken(tokenStr); err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			handlers.WriteDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		next.ServeHTTP(w, r)
	})
}
