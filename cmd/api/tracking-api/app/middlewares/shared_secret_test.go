package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func callSharedSecret(t *testing.T, header, value string) (int, bool) {
	t.Helper()
	nextCalled := false
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/webhook/booking", nil)
	if header != "" {
		r.Header.Set(header, value)
	}
	NewSharedSecret().ServeHTTP(w, r, func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	})
	return w.Code, nextCalled
}

func TestSharedSecretDisabledWhenUnconfigured(t *testing.T) {
	viper.Set("webhook.secret", "")

	_, nextCalled := callSharedSecret(t, "", "")

	assert.True(t, nextCalled)
}

func TestSharedSecretMatch(t *testing.T) {
	viper.Set("webhook.secret", "s3cret")
	t.Cleanup(func() { viper.Set("webhook.secret", "") })

	_, nextCalled := callSharedSecret(t, "X-Webhook-Secret", "s3cret")
	assert.True(t, nextCalled)

	_, nextCalled = callSharedSecret(t, "Authorization", "Bearer s3cret")
	assert.True(t, nextCalled)

	_, nextCalled = callSharedSecret(t, "Authorization", "s3cret")
	assert.True(t, nextCalled)
}

func TestSharedSecretMismatch(t *testing.T) {
	viper.Set("webhook.secret", "s3cret")
	t.Cleanup(func() { viper.Set("webhook.secret", "") })

	code, nextCalled := callSharedSecret(t, "X-Webhook-Secret", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, nextCalled)

	code, nextCalled = callSharedSecret(t, "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, nextCalled)
}

// The rejection must not leak the expected secret.
func TestSharedSecretNotEchoed(t *testing.T) {
	viper.Set("webhook.secret", "s3cret")
	t.Cleanup(func() { viper.Set("webhook.secret", "") })

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/webhook/booking", nil)
	r.Header.Set("X-Webhook-Secret", "wrong")
	NewSharedSecret().ServeHTTP(w, r, func(http.ResponseWriter, *http.Request) {})

	assert.NotContains(t, w.Body.String(), "s3cret")
}
