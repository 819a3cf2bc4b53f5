package services

import (
	"net/http/httptest"
	"testing"
)

func TestResolvePrefersAuthenticatedUser(t *testing.T) {
	r := httptest.NewRequest("POST", "/project/x/like", nil)
	r.RemoteAddr = "203.0.113.5:51234"
	userID := uint(9)

	actor := ActorResolver{}.Resolve(r, &userID)
	if !actor.IsAuthenticated() {
		t.Fatal("expected authenticated actor")
	}
	if *actor.UserID != 9 {
		t.Errorf("UserID = %d, want 9", *actor.UserID)
	}
	if actor.IPAddress != "" {
		t.Errorf("IPAddress = %q, want empty for authenticated actor", actor.IPAddress)
	}
}

func TestResolveAnonymousUsesRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("POST", "/project/x/like", nil)
	r.RemoteAddr = "203.0.113.5:51234"

	actor := ActorResolver{}.Resolve(r, nil)
	if actor.IsAuthenticated() {
		t.Fatal("expected anonymous actor")
	}
	if actor.IPAddress != "203.0.113.5" {
		t.Errorf("IPAddress = %q, want %q", actor.IPAddress, "203.0.113.5")
	}
}

func TestClientIPIgnoresProxyHeaderByDefault(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.1:443"
	r.Header.Set("X-Real-IP", "198.51.100.99")

	if ip := (ActorResolver{}).ClientIP(r); ip != "192.0.2.1" {
		t.Errorf("ClientIP = %q, want %q", ip, "192.0.2.1")
	}
}

func TestClientIPHonorsTrustedProxyHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.2:443"
	r.Header.Set("X-Real-IP", "198.51.100.99")

	resolver := ActorResolver{TrustProxyHeaders: true}
	if ip := resolver.ClientIP(r); ip != "198.51.100.99" {
		t.Errorf("ClientIP = %q, want %q", ip, "198.51.100.99")
	}
}
