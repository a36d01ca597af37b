package middlewares

import (
	"net/http"

	"github.com/punky97/go-codebase/core/logger"
	"github.com/punky97/go-codebase/core/transport/transhttp"
	"github.com/spf13/viper"
)

// SharedSecret rejects webhook calls whose shared-secret header does
// not match webhook.secret. When no secret is configured the check is
// skipped entirely, a permissive default kept for local/dev setups.
type SharedSecret struct{}

func NewSharedSecret() *SharedSecret {
	return &SharedSecret{}
}

func (m *SharedSecret) ServeHTTP(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	secret := viper.GetString("webhook.secret")
	if secret == "" {
		next(w, r)
		return
	}

	provided := r.Header.Get("X-Webhook-Secret")
	if provided == "" {
		provided = r.Header.Get("Authorization")
	}
	if provided == secret || provided == "Bearer "+secret {
		next(w, r)
		return
	}

	// Never echo the expected value.
	logger.BkLog.Warnw("Webhook secret mismatch", "remote", r.RemoteAddr)
	transhttp.RespondJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
}
