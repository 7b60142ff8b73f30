package cloud

import (
	"math/rand/v2"
)

// ScaleType selects how raw values are mapped into [0,1].
type ScaleType string

const (
	ScaleLinear      ScaleType = "linear"
	ScaleLogarithmic ScaleType = "logarithmic"
)

// RotationMode selects the rotation policy of the spiral search.
type RotationMode string

const (
	// RotateOrthogonal picks 0° or -90° with ±1° jitter.
	RotateOrthogonal RotationMode = "orthogonal"
	// RotateAny picks 0° or 90° (±2.5°), or cycles 0/45/90/-45 (±5°) under brute force.
	RotateAny RotationMode = "any"
	// RotateNone keeps every label horizontal and consumes no randomness.
	RotateNone RotationMode = "none"
)

// Strategy selects how label spacing reacts to importance.
type Strategy string

const (
	StrategyUniform  Strategy = "uniform"
	StrategyAdaptive Strategy = "adaptive"
)

// Word is a weighted label.
type Word struct {
	Text  string
	Value float64
	Color string
}

// WordCountScaling shrinks all fonts when the word set grows past Threshold.
type WordCountScaling struct {
	Enabled   bool
	MinScale  float64
	MaxScale  float64
	Threshold int
}

// FontConfig bounds font sizes as percentages of the shorter canvas side.
type FontConfig struct {
	Min              float64
	Max              float64
	ScaleFactor      float64
	WordCountScaling *WordCountScaling
}

// Default font bounds, in percent of the shorter canvas side.
const (
	DefaultFontMin = 2.0
	DefaultFontMax = 12.0
)

// Normalized returns a copy with documented defaults substituted for
// missing or inconsistent fields. A negative Min counts as 0; a Max that is
// not above Min resets both bounds.
func (f FontConfig) Normalized() FontConfig {
	f.Min = max(f.Min, 0)
	if f.Max <= 0 || f.Max <= f.Min {
		f.Min, f.Max = DefaultFontMin, DefaultFontMax
	}
	if f.ScaleFactor <= 0 {
		f.ScaleFactor = 1
	}
	if s := f.WordCountScaling; s != nil && s.Enabled {
		c := *s
		if c.MaxScale <= 0 {
			c.MaxScale = 1
		}
		if c.MinScale <= 0 || c.MinScale > c.MaxScale {
			c.MinScale = min(0.5, c.MaxScale)
		}
		if c.Threshold <= 1 {
			c.Threshold = 50
		}
		f.WordCountScaling = &c
	}
	return f
}

// PackingConfig controls the spiral search and label spacing.
type PackingConfig struct {
	Factor        float64
	Strategy      Strategy
	MinSpacing    float64
	BruteForce    bool
	MaxAttempts   int
	SpiralDensity float64
}

// Normalized returns a copy with defaults from [DefaultTunables] substituted
// for zero or invalid fields.
func (p PackingConfig) Normalized() PackingConfig {
	return p.normalized(DefaultTunables())
}

func (p PackingConfig) normalized(t Tunables) PackingConfig {
	if p.Factor <= 0 {
		p.Factor = 1
	}
	if p.Strategy != StrategyUniform && p.Strategy != StrategyAdaptive {
		p.Strategy = StrategyAdaptive
	}
	if p.MinSpacing < 0 {
		p.MinSpacing = 0
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = t.DefaultMaxAttempts
	}
	if p.SpiralDensity <= 0 {
		p.SpiralDensity = t.DefaultSpiralDensity
	}
	return p
}

// Tunables holds the heuristic constants of the engine. Pass a modified
// copy of [DefaultTunables] to [WithTunables] to change them.
type Tunables struct {
	// EarlyAcceptRadius stops the search once a valid candidate lies within
	// this fraction of the shorter side from the center. Default: 0.10.
	EarlyAcceptRadius float64
	// EarlyAcceptFraction stops the search once this fraction of the attempt
	// budget is spent and a valid candidate exists. Default: 0.80.
	EarlyAcceptFraction float64

	// SpacingRatio is the label padding as a fraction of the label's shorter
	// side, before the packing factor applies. Default: 0.15.
	SpacingRatio float64
	// AdaptiveBase is the spacing multiplier of the least important word under
	// the adaptive strategy; the most important word gets 1. Default: 0.5.
	AdaptiveBase float64
	// DefaultPaddingRatio pads a box by this fraction of its longer side when
	// the computed spacing is not positive. Default: 0.15.
	DefaultPaddingRatio float64

	// DefaultSpiralDensity is the spiral turn count used when
	// PackingConfig.SpiralDensity is unset. Default: 12.
	DefaultSpiralDensity float64
	// InitialRadiusRatio is the first spiral radius as a fraction of the
	// shorter side, scaled by the packing factor. Default: 0.075.
	InitialRadiusRatio float64
	// MaxRadiusRatio caps the spiral radius as a fraction of the shorter
	// side. Default: 0.45.
	MaxRadiusRatio float64
	// GrowthRate is the exponent of the saturating radius curve. Default: 3.
	GrowthRate float64
	// ImportancePull slows radius growth for important words: a word with
	// normalized value v grows at (1 - ImportancePull*v). Default: 0.5.
	ImportancePull float64

	// BaseMarginPercent is the canvas inset as a fraction of the shorter side
	// at packing factor 1. Denser packing shrinks it. Default: 0.02.
	BaseMarginPercent float64

	// MinFontSize is the legibility floor in canvas units. Default: 8.
	MinFontSize float64
	// MaxFontRatio caps font size as a fraction of the shorter side.
	// Default: 0.8.
	MaxFontRatio float64

	// DefaultMaxAttempts is the per-word attempt budget used when
	// PackingConfig.MaxAttempts is unset. Default: 400.
	DefaultMaxAttempts int
}

// DefaultTunables returns the constants used when no [WithTunables] option is given.
func DefaultTunables() Tunables {
	return Tunables{
		EarlyAcceptRadius:    0.10,
		EarlyAcceptFraction:  0.80,
		SpacingRatio:         0.15,
		AdaptiveBase:         0.5,
		DefaultPaddingRatio:  0.15,
		DefaultSpiralDensity: 12,
		InitialRadiusRatio:   0.075,
		MaxRadiusRatio:       0.45,
		GrowthRate:           3,
		ImportancePull:       0.5,
		BaseMarginPercent:    0.02,
		MinFontSize:          8,
		MaxFontRatio:         0.8,
		DefaultMaxAttempts:   400,
	}
}

// Random is the uniform [0,1) source consumed by rotation choice.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// NewRand returns a PCG-backed source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Measurer reports the rendered width and height of text at fontSize.
// It must be a pure function of its arguments for a fixed font.
type Measurer func(text string, fontSize float64) (width, height float64)

// DefaultCharWidth is the average glyph advance of a proportional sans-serif
// font, as a fraction of the font size.
const DefaultCharWidth = 0.55

// ApproxMeasurer returns a measurer that assumes every rune advances
// ratio*fontSize. A non-positive ratio uses [DefaultCharWidth]. Build falls
// back to it when no measurer is given.
func ApproxMeasurer(ratio float64) Measurer {
	if ratio <= 0 {
		ratio = DefaultCharWidth
	}
	return func(text string, fontSize float64) (float64, float64) {
		return float64(len([]rune(text))) * fontSize * ratio, fontSize
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
