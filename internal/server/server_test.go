package server

import (
	"net/http/httptest"
	"testing"

	"github.com/faazahm/backend-camping/internal/config"
)

func TestHealthRoute(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestBookingRoutesRequireAuth(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	for _, route := range []struct{ method, path string }{
		{"POST", "/bookings/"},
		{"GET", "/bookings/"},
		{"PUT", "/bookings/some-ref/equipment"},
		{"GET", "/admin/bookings/"},
		{"PUT", "/admin/bookings/some-ref/status"},
		{"POST", "/campsites/"},
		{"DELETE", "/equipment/some-id"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp, err := s.App.Test(req)
		if err != nil {
			t.Fatalf("%s %s: %v", route.method, route.path, err)
		}
		if resp.StatusCode != 401 {
			t.Fatalf("%s %s: expected 401 without token, got %d", route.method, route.path, resp.StatusCode)
		}
	}
}
