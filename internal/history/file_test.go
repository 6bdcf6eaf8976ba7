package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

func TestFileBackendMissingFileIsEmpty(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "history.json"))
	got, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	b := NewFileBackend(path)
	b.now = func() time.Time { return now }

	in := map[string]matches.HistoryEntry{
		"a": {
			Record:     matches.MatchRecord{ID: "a", Status: matches.StatusFinished, Kickoff: now.Add(-time.Hour), Score: &matches.Score{Home: 90, Away: 80}},
			LastSeenAt: now,
		},
	}
	if err := b.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file renamed away")
	}

	out, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := out["a"]
	if got.Record.Score == nil || got.Record.Score.Home != 90 || !got.LastSeenAt.Equal(now) {
		t.Fatalf("unexpected round trip %+v", got)
	}
}

func TestFileBackendIgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	doc := `{
		"version": 3,
		"savedAt": "2026-03-01T12:00:00Z",
		"checksum": "abc",
		"entries": {
			"a": {
				"record": {"id": "a", "kickoff": "2026-02-27T18:00:00Z", "status": "finished", "attendance": 15000},
				"last_seen_at": "2026-03-01T12:00:00Z",
				"source": "scrape"
			}
		}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := NewFileBackend(path).Load(context.Background())
	if err != nil {
		t.Fatalf("expected forward-compatible load, got %v", err)
	}
	if out["a"].Record.Status != matches.StatusFinished {
		t.Fatalf("unexpected entry %+v", out["a"])
	}
}

func TestFileBackendCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileBackend(path).Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFileBackendThroughStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := loadedStore(t, NewFileBackend(path))
	s.Upsert(entry("a", now))
	if err := s.Persist(context.Background()); err != nil {
		t.Fatalf("persist: %v", err)
	}

	reopened := NewStore(NewFileBackend(path))
	if err := reopened.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if reopened.Len() != 1 || reopened.BackendName() != "file" {
		t.Fatalf("expected persisted entry after reopen")
	}
}
