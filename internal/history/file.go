package history

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

const fileFormatVersion = 1

type fileDocument struct {
	Version int                             `json:"version"`
	SavedAt time.Time                       `json:"savedAt"`
	Entries map[string]matches.HistoryEntry `json:"entries"`
}

// FileBackend keeps history in a single JSON document, replaced atomically on save.
type FileBackend struct {
	path string
	now  func() time.Time
}

// NewFileBackend constructs a backend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path, now: time.Now}
}

func (b *FileBackend) Name() string { return "file" }

// Path exposes the document location.
func (b *FileBackend) Path() string { return b.path }

// Load reads the document. A missing file is an empty history.
func (b *FileBackend) Load(ctx context.Context) (map[string]matches.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]matches.HistoryEntry{}, nil
		}
		return nil, err
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Entries == nil {
		doc.Entries = map[string]matches.HistoryEntry{}
	}
	return doc.Entries, nil
}

// Save writes the document to a temp file and renames it over the target.
func (b *FileBackend) Save(ctx context.Context, entries map[string]matches.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return err
	}
	if entries == nil {
		entries = map[string]matches.HistoryEntry{}
	}

	data, err := json.MarshalIndent(fileDocument{
		Version: fileFormatVersion,
		SavedAt: b.now().UTC(),
		Entries: entries,
	}, "", "  ")
	if err != nil {
		return err
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, b.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
