// Package cache provides the caching layer shared by the CLI and the HTTP API.
//
// Three stages are cached: words counted from free text (keyed on a hash of
// the text and the top-N cut), computed layouts (keyed on a hash of the word
// list plus every option that influences placement) and rendered artifacts
// (keyed on a hash of the layout plus render options). Backends:
//
//   - [FileCache]: sharded JSON files under the user cache directory (CLI)
//   - [MemoryCache]: in-process map with expiry (server without Redis)
//   - [RedisCache]: shared cache for multiple server instances
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// A miss is reported as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	WordsKey(textHash string, topN int) string
	LayoutKey(wordsHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// Default TTLs per stage. Layouts are deterministic only with a seed, so
// unseeded layouts are never cached (see pipeline.Options.Cacheable).
const (
	TTLWords    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	Width, Height float64
	FontMin       float64
	FontMax       float64
	ScaleFactor   float64
	WordScaling   bool
	MinScale      float64
	MaxScale      float64
	Threshold     int
	Factor        float64
	Strategy      string
	MinSpacing    float64
	BruteForce    bool
	MaxAttempts   int
	SpiralDensity float64
	Rotation      string
	Scale         string
	Seed          uint64
	Measure       string
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	Palette    []string
	Background string
	Boxes      bool
	Hover      bool
	Titles     bool
	PNGScale   float64
}

// DefaultKeyer hashes stage inputs into "<stage>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// WordsKey generates a key for words counted from free text.
func (DefaultKeyer) WordsKey(textHash string, topN int) string {
	return hashKey("words", textHash, topN)
}

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", wordsHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
