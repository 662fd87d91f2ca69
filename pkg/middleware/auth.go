package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/logger"
	"github.com/gymstack/gymcore/pkg/metrics"
	"github.com/gymstack/gymcore/pkg/response"
)

const (
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

// TokenVerifier is satisfied by *auth.Verifier.
type TokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// Authenticate verifies the token in header and stores the principal in the
// request context. It must run before any rbac gate.
func Authenticate(v TokenVerifier, header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r, header)

			p, err := v.Verify(token)
			if err != nil {
				msg := msgInvalidToken
				class := "token_invalid"
				if errors.Is(err, auth.ErrNoToken) {
					msg, class = msgNoToken, "token_missing"
				}
				metrics.AuthFailures.WithLabelValues(class).Inc()
				logger.WithCtx(r.Context()).Debug("token rejected", "error", err)
				response.Unauthorized(w, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// TokenFromRequest reads header, tolerating a "Bearer " prefix.
func TokenFromRequest(r *http.Request, header string) string {
	raw := strings.TrimSpace(r.Header.Get(header))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return raw
}
