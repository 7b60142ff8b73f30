package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/wordcloud/pkg/model"
)

// FileStore is a file-based layout store.
// Layouts are stored as JSON files named <id>.json in a data directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based layout store.
// If baseDir is empty, defaults to $XDG_DATA_HOME/wordcloud/layouts
// (~/.local/share/wordcloud/layouts).
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("get home dir: %w", err)
			}
			dataHome = filepath.Join(home, ".local", "share")
		}
		baseDir = filepath.Join(dataHome, "wordcloud", "layouts")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) layoutPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, l *model.Layout) error {
	if err := prepare(l); err != nil {
		return err
	}
	data, err := model.MarshalLayout(*l)
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.layoutPath(l.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write layout file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write layout file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (model.Layout, error) {
	if err := ValidateID(id); err != nil {
		return model.Layout{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.layoutPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Layout{}, notFound(id)
		}
		return model.Layout{}, fmt.Errorf("read layout file: %w", err)
	}
	l, err := model.UnmarshalLayout(data)
	if err != nil {
		return model.Layout{}, fmt.Errorf("parse layout %s: %w", id, err)
	}
	return l, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Summary
	err := s.each(func(_ string, l model.Layout) {
		out = append(out, Summarize(l))
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(out)
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.layoutPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return fmt.Errorf("remove layout file: %w", err)
	}
	return nil
}

func (s *FileStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	err := s.each(func(path string, l model.Layout) {
		if l.CreatedAt.Before(cutoff) && os.Remove(path) == nil {
			n++
		}
	})
	return n, err
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for layout files.
func (s *FileStore) Path() string {
	return s.baseDir
}

// each calls fn for every readable layout file. Unreadable or corrupt files
// are skipped. Callers hold the lock.
func (s *FileStore) each(fn func(path string, l model.Layout)) error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read layout dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var l model.Layout
		if err := json.Unmarshal(data, &l); err != nil {
			continue
		}
		fn(path, l)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
