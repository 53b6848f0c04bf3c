package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		forwarded  string
		trustProxy bool
		want       string
	}{
		{"host and port", "1.2.3.4:5678", "", false, "1.2.3.4"},
		{"ipv6", "[::1]:80", "", false, "::1"},
		{"no port", "1.2.3.4", "", false, "1.2.3.4"},
		{"forwarded ignored", "1.2.3.4:1", "9.9.9.9", false, "1.2.3.4"},
		{"forwarded trusted", "1.2.3.4:1", " 9.9.9.9 , 10.0.0.1", true, "9.9.9.9"},
		{"forwarded empty", "1.2.3.4:1", "", true, "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientIP(req, tt.trustProxy))
		})
	}
}
