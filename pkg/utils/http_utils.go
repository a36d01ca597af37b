package utils

import (
	"net/http"
	"strings"
)

// ClientIp extracts the caller's IP from proxy headers: first entry of
// X-Forwarded-For, falling back to X-Real-IP. Empty when neither is set.
func ClientIp(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.Header.Get("X-Real-IP")
}
