// Package fonts provides the default font used for measuring and rendering
// word cloud labels.
//
// The font is Go Regular from golang.org/x/image, compiled into the binary so
// measurement and SVG output agree without any system fonts installed.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// TTF returns the TrueType data of the default font.
func TTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// TTFBase64 returns the TrueType data as a base64 string for @font-face
// embedding. The result is cached after first computation.
func TTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

var parsed = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Default returns the parsed default font. It is parsed once and shared;
// sfnt fonts are safe for concurrent use with separate buffers.
func Default() (*opentype.Font, error) {
	return parsed()
}

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily provides fallback fonts for renderers that ignore @font-face.
const FallbackFontFamily = "Helvetica, Arial, sans-serif"
