package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/model"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	words, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Words = words
	result.Stats.ParseTime = time.Since(parseStart)
	result.CacheInfo.ParseHit = parseHit
	result.Stats.WordCount = len(words)
	if data, err := model.MarshalWords(words); err == nil {
		result.WordsHash = cache.Hash(data)
	}

	r.Logger.Info("parsed words",
		"words", len(words),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.LayoutWithCacheInfo(ctx, words, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Placed = len(layout.Words)
	result.Stats.Dropped = len(layout.Dropped)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"placed", len(layout.Words),
		"dropped", len(layout.Dropped),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo resolves the word list with caching and returns cache
// hit info. Only counted free text is cached; explicit lists are returned
// as given.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) ([]model.Word, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	if opts.Text == "" {
		words, err := ParseWords(ctx, opts)
		return words, false, err
	}

	cacheKey := r.Keyer.WordsKey(cache.Hash([]byte(opts.Text)), opts.TopN)
	var cached []model.Word
	if err := cache.GetJSON(ctx, r.Cache, cacheKey, &cached); err == nil {
		observability.Cache().OnCacheHit(ctx, "words")
		return cached, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "words")

	words, err := ParseWords(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	if err := cache.SetJSON(ctx, r.Cache, cacheKey, words, cache.TTLWords); err != nil {
		r.Logger.Warn("cache words", "error", err)
	}
	return words, false, nil
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
// Randomized runs bypass the cache entirely.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, words []model.Word, opts Options) (model.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return model.Layout{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(words))
	start := time.Now()

	// Compute cache key
	var cacheKey string
	if opts.Cacheable() {
		wordsData, err := model.MarshalWords(words)
		if err != nil {
			return model.Layout{}, false, fmt.Errorf("serialize words for cache key: %w", err)
		}
		cacheKey = r.Keyer.LayoutKey(cache.Hash(wordsData), opts.LayoutKeyOpts())

		// Try cache first
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := model.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				hooks.OnLayoutComplete(ctx, len(cached.Words), len(cached.Dropped), time.Since(start), nil)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Generate layout
	layout, err := GenerateLayout(words, opts)
	hooks.OnLayoutComplete(ctx, len(layout.Words), len(layout.Dropped), time.Since(start), err)
	if err != nil {
		return model.Layout{}, false, err
	}

	opts.Logger.Debug("layout", "options", opts.String(), "coverage", layout.Stats.Coverage)

	// Cache the result
	if cacheKey != "" {
		if data, err := model.MarshalLayout(layout); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			} else {
				r.Logger.Warn("cache layout", "error", err)
			}
		}
	}

	return layout, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, words []model.Word, opts Options) (model.Layout, error) {
	layout, _, err := r.LayoutWithCacheInfo(ctx, words, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout model.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Compute cache key from layout data
	layoutHash, err := hashLayout(layout)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderFromLayout(ctx, layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout model.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashLayout hashes the geometry of a layout. Storage metadata (ID and
// creation time) is excluded so a stored layout shares artifacts with the
// layout it was saved from.
func hashLayout(l model.Layout) (string, error) {
	l.ID = ""
	l.CreatedAt = time.Time{}
	data, err := model.MarshalLayout(l)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
