// Package pipeline provides the word cloud pipeline shared by the CLI and the
// HTTP API.
//
// This package implements the complete parse → layout → render pipeline. By
// centralizing this logic, the CLI and the server apply the same defaults, the
// same validation and the same cache keys.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Collect the word list (explicit words or counted free text)
//  2. Layout: Place words on the canvas with the spiral search engine
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Words:   []model.Word{{Text: "go", Value: 10}, {Text: "rust", Value: 4}},
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.Layout(ctx, words, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultPNGScale is the default raster scale factor.
	DefaultPNGScale = 2.0

	// DefaultRotation is the default rotation policy.
	DefaultRotation = string(cloud.RotateOrthogonal)

	// DefaultScale is the default value scaling.
	DefaultScale = string(cloud.ScaleLinear)

	// DefaultMeasure is the default text measurer.
	DefaultMeasure = MeasureFace

	// MaxSeed keeps seeds exact in JSON numbers and BSON int64 fields.
	MaxSeed = uint64(1) << 53
)

// Text measurers.
const (
	// MeasureFace measures labels with the Go Regular OpenType face.
	MeasureFace = "face"
	// MeasureApprox uses the fixed cloud.DefaultCharWidth per character approximation.
	MeasureApprox = "approx"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidMeasures is the set of supported text measurers.
var ValidMeasures = map[string]bool{
	MeasureFace:   true,
	MeasureApprox: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the word cloud pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	Words []model.Word `json:"words,omitempty"`
	Text  string       `json:"text,omitempty"` // Free text, counted into words
	TopN  int          `json:"top_n,omitempty"`

	// Layout options
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	FontMin        float64 `json:"font_min,omitempty"` // Percent of the shorter side
	FontMax        float64 `json:"font_max,omitempty"`
	ScaleFactor    float64 `json:"scale_factor,omitempty"`
	WordScaling    bool    `json:"word_scaling,omitempty"`
	MinScale       float64 `json:"min_scale,omitempty"`
	MaxScale       float64 `json:"max_scale,omitempty"`
	ScaleThreshold int     `json:"scale_threshold,omitempty"`
	PackingFactor  float64 `json:"packing_factor,omitempty"`
	Strategy       string  `json:"strategy,omitempty"`
	MinSpacing     float64 `json:"min_spacing,omitempty"`
	BruteForce     bool    `json:"brute_force,omitempty"`
	MaxAttempts    int     `json:"max_attempts,omitempty"`
	SpiralDensity  float64 `json:"spiral_density,omitempty"`
	Rotation       string  `json:"rotation,omitempty"`
	Scale          string  `json:"scale,omitempty"`
	Measure        string  `json:"measure,omitempty"`
	Seed           uint64  `json:"seed,omitempty"`
	Randomize      bool    `json:"randomize,omitempty"` // Draw a fresh seed; disables layout caching

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Palette    []string `json:"palette,omitempty"`
	Background string   `json:"background,omitempty"`
	Boxes      bool     `json:"boxes,omitempty"`
	Hover      bool     `json:"hover,omitempty"`
	Titles     bool     `json:"titles,omitempty"`
	PNGScale   float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Words is the parsed word list.
	Words []model.Word

	// WordsHash is the content hash of the word list.
	WordsHash string

	// Layout is the computed (or cached) layout.
	Layout model.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount  int
	Placed     int
	Dropped    int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether counted words came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMeasure checks that a measurer name is valid.
func ValidateMeasure(m string) error {
	if !ValidMeasures[m] {
		return errs.New(errs.ErrCodeInvalidConfig, "invalid measure: %q (must be one of: face, approx)", m)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the input fields and sets parse defaults.
func (o *Options) ValidateForParse() error {
	if len(o.Words) > 0 && o.Text != "" {
		return errs.New(errs.ErrCodeInvalidInput, "words and text are mutually exclusive")
	}
	if o.TopN < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "top_n must not be negative, got %d", o.TopN)
	}
	if o.TopN == 0 {
		o.TopN = model.DefaultTopN
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return errs.ValidateWords(o.Words)
}

// SetLayoutDefaults sets default values for layout computation.
// Only zero fields are filled; inconsistent values are left for validation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.FontMin == 0 && o.FontMax == 0 {
		o.FontMin, o.FontMax = cloud.DefaultFontMin, cloud.DefaultFontMax
	}
	if o.ScaleFactor == 0 {
		o.ScaleFactor = 1
	}
	if o.WordScaling {
		ws := o.FontConfig().Normalized().WordCountScaling
		o.MinScale, o.MaxScale, o.ScaleThreshold = ws.MinScale, ws.MaxScale, ws.Threshold
	}

	tun := cloud.DefaultTunables()
	if o.PackingFactor == 0 {
		o.PackingFactor = 1
	}
	if o.Strategy == "" {
		o.Strategy = string(cloud.StrategyAdaptive)
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = tun.DefaultMaxAttempts
	}
	if o.SpiralDensity == 0 {
		o.SpiralDensity = tun.DefaultSpiralDensity
	}
	if o.Rotation == "" {
		o.Rotation = DefaultRotation
	}
	if o.Scale == "" {
		o.Scale = DefaultScale
	}
	if o.Measure == "" {
		o.Measure = DefaultMeasure
	}
	if o.Seed == 0 {
		if o.Randomize {
			o.Seed = rand.Uint64N(MaxSeed) + 1
		} else {
			o.Seed = DefaultSeed
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errs.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Seed > MaxSeed {
		return errs.New(errs.ErrCodeInvalidConfig, "seed must be at most %d, got %d", MaxSeed, o.Seed)
	}
	if err := errs.ValidateFontConfig(o.FontConfig()); err != nil {
		return err
	}
	if err := errs.ValidatePackingConfig(o.PackingConfig()); err != nil {
		return err
	}
	if err := errs.ValidateRotationMode(o.Rotation); err != nil {
		return err
	}
	if err := errs.ValidateScaleType(o.Scale); err != nil {
		return err
	}
	return ValidateMeasure(o.Measure)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if o.PNGScale < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "png_scale must be positive, got %v", o.PNGScale)
	}
	return ValidateFormats(o.Formats)
}

// FontConfig returns the engine font configuration.
func (o *Options) FontConfig() cloud.FontConfig {
	f := cloud.FontConfig{
		Min:         o.FontMin,
		Max:         o.FontMax,
		ScaleFactor: o.ScaleFactor,
	}
	if o.WordScaling {
		f.WordCountScaling = &cloud.WordCountScaling{
			Enabled:   true,
			MinScale:  o.MinScale,
			MaxScale:  o.MaxScale,
			Threshold: o.ScaleThreshold,
		}
	}
	return f
}

// PackingConfig returns the engine packing configuration.
func (o *Options) PackingConfig() cloud.PackingConfig {
	return cloud.PackingConfig{
		Factor:        o.PackingFactor,
		Strategy:      cloud.Strategy(o.Strategy),
		MinSpacing:    o.MinSpacing,
		BruteForce:    o.BruteForce,
		MaxAttempts:   o.MaxAttempts,
		SpiralDensity: o.SpiralDensity,
	}
}

// Cacheable reports whether a layout computed from these options may be
// served from cache. Randomized layouts are meant to differ on every run.
func (o *Options) Cacheable() bool {
	return !o.Randomize
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		FontMin:       o.FontMin,
		FontMax:       o.FontMax,
		ScaleFactor:   o.ScaleFactor,
		WordScaling:   o.WordScaling,
		MinScale:      o.MinScale,
		MaxScale:      o.MaxScale,
		Threshold:     o.ScaleThreshold,
		Factor:        o.PackingFactor,
		Strategy:      o.Strategy,
		MinSpacing:    o.MinSpacing,
		BruteForce:    o.BruteForce,
		MaxAttempts:   o.MaxAttempts,
		SpiralDensity: o.SpiralDensity,
		Rotation:      o.Rotation,
		Scale:         o.Scale,
		Seed:          o.Seed,
		Measure:       o.Measure,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Palette:    o.Palette,
		Background: o.Background,
		Boxes:      o.Boxes,
		Hover:      o.Hover,
		Titles:     o.Titles,
	}
	if format == FormatPNG {
		k.PNGScale = o.PNGScale
	}
	return k
}

// String summarizes the layout options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("%gx%g rotation=%s scale=%s seed=%d", o.Width, o.Height, o.Rotation, o.Scale, o.Seed)
}
