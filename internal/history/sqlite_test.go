package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	first := map[string]matches.HistoryEntry{
		"a": entry("a", now),
		"b": entry("b", now.Add(-time.Hour)),
	}
	if err := b.Save(context.Background(), first); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A second save replaces the table contents.
	if err := b.Save(context.Background(), map[string]matches.HistoryEntry{"b": entry("b", now)}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected replaced contents, got %d entries", len(got))
	}
	if !got["b"].LastSeenAt.Equal(now) || got["b"].Record.Status != matches.StatusFinished {
		t.Fatalf("unexpected entry %+v", got["b"])
	}
}

func TestSQLiteBackendEmpty(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()

	got, err := b.Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty history, got %v %v", got, err)
	}
	if b.Name() != "sqlite" {
		t.Fatalf("unexpected backend name %s", b.Name())
	}
}
