// Package store persists computed layouts so they can be fetched and
// re-rendered later by ID.
//
// Backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON files in a directory, for the CLI and single-instance servers
//   - mongo: MongoDB collection for production multi-instance deployments
//
// # Architecture
//
// Layouts are stored whole ([model.Layout] carries both json and bson tags).
// Save assigns a random UUID and the creation time when the layout has none,
// so callers never invent IDs. IDs are validated as UUIDs before they reach a
// backend, which keeps file paths and query filters well-formed.
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "wordcloud")
//
// Persist and fetch layouts:
//
//	if err := st.Save(ctx, &layout); err != nil {
//	    return err
//	}
//	l, err := st.Get(ctx, layout.ID)
//	if errors.Is(err, errors.ErrCodeLayoutNotFound) {
//	    // unknown or pruned
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// Store is the interface for layout storage backends.
type Store interface {
	// Save stores a layout. A missing ID or creation time is filled in and
	// written back to l.
	Save(ctx context.Context, l *model.Layout) error

	// Get retrieves a layout by ID.
	// Returns a LAYOUT_NOT_FOUND error if the layout doesn't exist.
	Get(ctx context.Context, id string) (model.Layout, error)

	// List returns summaries of the newest layouts, newest first.
	// limit <= 0 uses DefaultListLimit.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a layout.
	// Returns a LAYOUT_NOT_FOUND error if the layout doesn't exist.
	Delete(ctx context.Context, id string) error

	// Prune removes layouts created before cutoff and reports how many.
	Prune(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases backend resources.
	Close() error
}

// Summary describes a stored layout without its words.
type Summary struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Stats     model.Stats `json:"stats"`
}

// Defaults.
const (
	// DefaultListLimit caps List when no limit is given.
	DefaultListLimit = 50

	// DefaultRetention is how long servers keep layouts before pruning.
	DefaultRetention = 30 * 24 * time.Hour
)

// NewID creates a random layout ID.
func NewID() string {
	return uuid.NewString()
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid layout id %q", id)
	}
	return nil
}

// Summarize returns the summary of l.
func Summarize(l model.Layout) Summary {
	return Summary{
		ID:        l.ID,
		CreatedAt: l.CreatedAt,
		Width:     l.Width,
		Height:    l.Height,
		Stats:     l.Stats,
	}
}

// prepare fills in the ID and creation time of a layout about to be saved.
func prepare(l *model.Layout) error {
	if l.ID == "" {
		l.ID = NewID()
	} else if err := ValidateID(l.ID); err != nil {
		return err
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return nil
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeLayoutNotFound, "layout %s not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
