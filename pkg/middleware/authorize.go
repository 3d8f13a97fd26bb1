package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/solstice-web/sitekit/pkg/composables"
	"github.com/solstice-web/sitekit/pkg/configuration"
	"github.com/solstice-web/sitekit/pkg/httpapi"
)

// Authorize marks the request authenticated when a bearer token matching the
// configured admin token is present. Token issuance is handled by the auth
// provider upstream of this service.
func Authorize() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conf := configuration.Use()
			params, ok := composables.UseParams(r.Context())
			if !ok {
				params = &composables.Params{Request: r, Writer: w}
				r = r.WithContext(composables.WithParams(r.Context(), params))
			}

			token := bearerToken(r)
			if token != "" && conf.AdminAPIToken != "" &&
				subtle.ConstantTimeCompare([]byte(token), []byte(conf.AdminAPIToken)) == 1 {
				params.Authenticated = true
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthorization rejects unauthenticated requests with a 401 envelope.
func RequireAuthorization() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !composables.UseAuthenticated(r.Context()) {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
