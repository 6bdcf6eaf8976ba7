package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestFromContextReturnsStoredLogger(t *testing.T) {
	fallback := slog.Default()
	scoped := NewLogger(Config{})
	ctx := WithLogger(context.Background(), scoped)

	if got := FromContext(ctx, fallback); got != scoped {
		t.Fatalf("expected scoped logger")
	}
}

func TestFromContextFallsBack(t *testing.T) {
	fallback := slog.Default()
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatalf("expected fallback logger")
	}
	var nilCtx context.Context
	if got := FromContext(nilCtx, fallback); got != fallback {
		t.Fatalf("expected fallback for nil context")
	}
	if ctx := WithLogger(context.Background(), nil); FromContext(ctx, fallback) != fallback {
		t.Fatalf("expected nil logger to be ignored")
	}
}
