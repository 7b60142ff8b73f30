// Package measure provides text measurers for the placement engine.
//
// [Approx] estimates widths from a fixed glyph-advance ratio and needs no
// font data. [Face] measures real glyph advances and kerning from an
// OpenType font; [Default] uses the embedded Go Regular face, which is also
// what the SVG sink embeds, so measured and rendered widths agree.
package measure

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// DefaultCharWidth is the glyph advance ratio used by [Approx].
const DefaultCharWidth = cloud.DefaultCharWidth

// Approx returns a measurer that assumes every rune advances ratio*fontSize.
// A non-positive ratio uses [DefaultCharWidth].
func Approx(ratio float64) cloud.Measurer {
	return cloud.ApproxMeasurer(ratio)
}

// Face measures text with an OpenType font.
type Face struct {
	font *sfnt.Font
}

// NewFace wraps a parsed font.
func NewFace(f *sfnt.Font) *Face {
	return &Face{font: f}
}

// Parse parses TrueType or OpenType data into a Face.
func Parse(data []byte) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("measure: parse font: %w", err)
	}
	return NewFace(f), nil
}

// Default returns a Face for the embedded default font.
func Default() (*Face, error) {
	f, err := fonts.Default()
	if err != nil {
		return nil, fmt.Errorf("measure: default font: %w", err)
	}
	return NewFace(f), nil
}

// Measure returns the advance width of text at fontSize, including pair
// kerning, and fontSize as the height. It allocates its own buffer, so one
// Face can be shared across goroutines.
func (f *Face) Measure(text string, fontSize float64) (float64, float64) {
	if text == "" || fontSize <= 0 {
		return 0, max(fontSize, 0)
	}
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(fontSize * 64)

	var (
		width fixed.Int26_6
		prev  sfnt.GlyphIndex
	)
	for i, r := range []rune(text) {
		idx, err := f.font.GlyphIndex(&buf, r)
		if err != nil {
			continue
		}
		if i > 0 {
			// Fonts without a kern table report ErrNotFound.
			if k, err := f.font.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				width += k
			}
		}
		adv, err := f.font.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		width += adv
		prev = idx
	}
	return fixedToFloat64(width), fontSize
}

// Measurer returns f.Measure as a [cloud.Measurer].
func (f *Face) Measurer() cloud.Measurer {
	return f.Measure
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
