package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealClientIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trust     bool
		want      string
	}{
		{"remote addr with port", "10.0.0.1:5555", "", false, "10.0.0.1"},
		{"remote addr without port", "10.0.0.2", "", false, "10.0.0.2"},
		{"forwarded ignored by default", "10.0.0.1:5555", "203.0.113.7", false, "10.0.0.1"},
		{"forwarded trusted", "10.0.0.1:5555", "203.0.113.7, 10.0.0.9", true, "203.0.113.7"},
		{"empty forwarded falls back", "10.0.0.1:5555", " ", true, "10.0.0.1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remote
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			assert.Equal(t, tc.want, RealClientIP(r, tc.trust))
		})
	}
}
