package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
)

func TestStartServeShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Shutdown()

	url := fmt.Sprintf("http://%s/health", srv.Addr())
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" {
		t.Errorf("status = %q", health.Status)
	}
}

func TestBindConflictFailsFast(t *testing.T) {
	first, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := first.Start(ctx); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	defer first.Shutdown()

	second, _ := newTestServer(t)
	second.cfg.Port = portOf(t, first)

	if err := second.Start(ctx); err == nil {
		second.Shutdown()
		t.Fatal("expected bind error for already-bound port")
	}
}

func portOf(t *testing.T, s *Server) int {
	t.Helper()
	addr, ok := s.Addr().(*net.TCPAddr)
	if !ok {
		t.Fatalf("unexpected addr type %T", s.Addr())
	}
	return addr.Port
}
