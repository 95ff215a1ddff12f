package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.4 ", "::1", "garbage", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.4", true},
		{"192.168.1.5", false},
		{"::1", true},
		{"::ffff:10.0.0.1", true},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("IsEmpty() = false for empty list")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "1.2.3.4:5678", nil, false, "1.2.3.4"},
		{"ignores headers without trust", "1.2.3.4:5678", map[string]string{"X-Forwarded-For": "9.9.9.9"}, false, "1.2.3.4"},
		{"cloudflare header", "127.0.0.1:1", map[string]string{"CF-Connecting-IP": "5.5.5.5"}, true, "5.5.5.5"},
		{"first forwarded", "127.0.0.1:1", map[string]string{"X-Forwarded-For": "6.6.6.6, 7.7.7.7"}, true, "6.6.6.6"},
		{"real ip", "127.0.0.1:1", map[string]string{"X-Real-IP": "8.8.8.8"}, true, "8.8.8.8"},
		{"ipv6 remote", "[::1]:80", nil, false, "::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
