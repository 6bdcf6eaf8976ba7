package requestutil

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestIDKeepsValidIDs(t *testing.T) {
	if got := SanitizeRequestID("abc-123_DEF"); got != "abc-123_DEF" {
		t.Fatalf("expected incoming id to be kept, got %s", got)
	}
}

func TestSanitizeRequestIDReplacesInvalidIDs(t *testing.T) {
	for _, in := range []string{"", "has space", strings.Repeat("a", 65), "semi;colon"} {
		got := SanitizeRequestID(in)
		if got == in {
			t.Fatalf("expected %q to be replaced", in)
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected generated uuid, got %q", got)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if got := ClientIP(req); got != "10.0.0.1:1234" {
		t.Fatalf("expected remote addr, got %s", got)
	}
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2")
	if got := ClientIP(req); got != "198.51.100.1" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}
	if ClientIP(nil) != "" {
		t.Fatalf("expected empty ip for nil request")
	}
}
