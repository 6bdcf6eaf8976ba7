package server

import (
	"net/http"
	"testing"
)

func TestNewAPIServerAppliesTimeouts(t *testing.T) {
	h := http.NotFoundHandler()
	srv := newAPIServer("4000", h)
	if srv.Addr() != ":4000" || srv.Handler() == nil {
		t.Fatalf("unexpected api server %q", srv.Addr())
	}
	if srv.srv.ReadTimeout != readTimeout || srv.srv.WriteTimeout != writeTimeout || srv.srv.IdleTimeout != idleTimeout {
		t.Fatalf("expected api timeouts applied, got %+v", srv.srv)
	}
}

func TestNewMetricsServerOnlyBoundsHeaders(t *testing.T) {
	srv := newMetricsServer("9464", http.NotFoundHandler())
	if srv.Addr() != ":9464" {
		t.Fatalf("unexpected metrics addr %q", srv.Addr())
	}
	if srv.srv.ReadHeaderTimeout != readTimeout || srv.srv.WriteTimeout != 0 {
		t.Fatalf("expected only a header timeout, got %+v", srv.srv)
	}
}
