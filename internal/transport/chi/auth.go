package chi

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerAuthMiddleware guards the cache maintenance routes with static API keys.
// If apiKeys is empty, authentication is disabled (pass-through).
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			switch {
			case auth == "":
				unauthorized(w, "missing authorization header")
				return
			case !strings.HasPrefix(auth, bearerPrefix):
				unauthorized(w, "authorization header must use Bearer scheme")
				return
			}

			if _, ok := validKeys[strings.TrimPrefix(auth, bearerPrefix)]; !ok {
				unauthorized(w, "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, ErrorResponseCodeUnauthorized, msg)
}
