package errors

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// Limits enforced by the validators.
const (
	MinDimension  = 100.0
	MaxDimension  = 10000.0
	MaxWordLength = 256
	MaxWords      = 5000
	MaxAttempts   = 100000
)

// ValidateWord validates a single input word.
//
// Validation rules:
//   - Text cannot be empty or longer than 256 runes
//   - No control characters
//   - Value must be a finite number (negative values are allowed and rank lowest)
func ValidateWord(text string, value float64) error {
	if text == "" {
		return New(ErrCodeInvalidWords, "word text cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxWordLength {
		return New(ErrCodeInvalidWords, "word too long (max %d characters): %.20q...", MaxWordLength, text)
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWords, "word %q contains control characters", text)
		}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return New(ErrCodeInvalidWords, "word %q has non-finite value", text)
	}
	return nil
}

// ValidateWords validates a word list. An empty list is valid and lays out
// to an empty cloud.
func ValidateWords(words []model.Word) error {
	if len(words) > MaxWords {
		return New(ErrCodeInvalidWords, "too many words: %d (max %d)", len(words), MaxWords)
	}
	for i, w := range words {
		if err := ValidateWord(w.Text, w.Value); err != nil {
			return Wrap(ErrCodeInvalidWords, err, "word %d", i+1)
		}
	}
	return nil
}

// ValidateDimensions enforces the canvas floor the placement engine assumes.
func ValidateDimensions(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || d.v < MinDimension {
			return New(ErrCodeInvalidDimensions, "%s must be at least %.0f, got %v", d.name, MinDimension, d.v)
		}
		if d.v > MaxDimension {
			return New(ErrCodeInvalidDimensions, "%s must be at most %.0f, got %v", d.name, MaxDimension, d.v)
		}
	}
	return nil
}

// ValidateFontConfig checks font bounds and word-count scaling.
// Zero values are accepted; the engine substitutes defaults for them.
func ValidateFontConfig(f cloud.FontConfig) error {
	if f.Min < 0 || f.Max < 0 || f.ScaleFactor < 0 {
		return New(ErrCodeInvalidConfig, "font sizes and scale factor must not be negative")
	}
	if (f.Min != 0 || f.Max != 0) && f.Min >= f.Max {
		return New(ErrCodeInvalidConfig, "font min (%v%%) must be below max (%v%%)", f.Min, f.Max)
	}
	if f.Max > 100 {
		return New(ErrCodeInvalidConfig, "font max is a percentage of the shorter side, got %v", f.Max)
	}
	if s := f.WordCountScaling; s != nil && s.Enabled {
		if s.MinScale < 0 || s.MaxScale < 0 || (s.MaxScale > 0 && s.MinScale > s.MaxScale) {
			return New(ErrCodeInvalidConfig, "word-count scaling needs 0 <= min scale <= max scale")
		}
		if s.Threshold < 0 || s.Threshold == 1 {
			return New(ErrCodeInvalidConfig, "word-count scaling threshold must be at least 2, got %d", s.Threshold)
		}
	}
	return nil
}

// ValidatePackingConfig checks packing density, spacing and search budget.
func ValidatePackingConfig(p cloud.PackingConfig) error {
	if p.Factor < 0 || math.IsNaN(p.Factor) {
		return New(ErrCodeInvalidConfig, "packing factor must be positive, got %v", p.Factor)
	}
	if p.MinSpacing < 0 {
		return New(ErrCodeInvalidConfig, "min spacing must not be negative, got %v", p.MinSpacing)
	}
	switch p.Strategy {
	case "", cloud.StrategyUniform, cloud.StrategyAdaptive:
	default:
		return New(ErrCodeInvalidConfig, "invalid packing strategy: %q (use uniform or adaptive)", p.Strategy)
	}
	if p.MaxAttempts < 0 || p.MaxAttempts > MaxAttempts {
		return New(ErrCodeInvalidConfig, "max attempts must be between 1 and %d, got %d", MaxAttempts, p.MaxAttempts)
	}
	if p.SpiralDensity < 0 {
		return New(ErrCodeInvalidConfig, "spiral density must be positive, got %v", p.SpiralDensity)
	}
	return nil
}

// ValidateScaleType accepts "linear", "logarithmic" or empty (linear).
func ValidateScaleType(s string) error {
	switch cloud.ScaleType(s) {
	case "", cloud.ScaleLinear, cloud.ScaleLogarithmic:
		return nil
	}
	return New(ErrCodeInvalidScale, "invalid scale: %q (use linear or logarithmic)", s)
}

// ValidateRotationMode accepts "any", "orthogonal", "none" or empty (orthogonal).
func ValidateRotationMode(m string) error {
	switch cloud.RotationMode(m) {
	case "", cloud.RotateAny, cloud.RotateOrthogonal, cloud.RotateNone:
		return nil
	}
	return New(ErrCodeInvalidRotation, "invalid rotation: %q (use any, orthogonal or none)", m)
}
