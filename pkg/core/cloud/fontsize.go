package cloud

import "math"

// FontSize resolves the font size for a word with the given normalized value
// using [DefaultTunables].
func FontSize(width, height float64, wordCount int, font FontConfig, normalized float64) float64 {
	return DefaultTunables().FontSize(width, height, wordCount, font, normalized)
}

// FontSize interpolates between the configured bounds, applies word-count
// scaling and the scale factor, then clamps to [MinFontSize, ref*MaxFontRatio]
// where ref is the shorter canvas side. The floor wins on tiny canvases.
func (t Tunables) FontSize(width, height float64, wordCount int, font FontConfig, normalized float64) float64 {
	font = font.Normalized()
	ref := min(width, height)
	minPx := font.Min / 100 * ref
	maxPx := font.Max / 100 * ref
	size := minPx + (maxPx-minPx)*normalized

	if s := font.WordCountScaling; s != nil && s.Enabled {
		size *= wordCountScale(wordCount, *s)
	}
	size *= font.ScaleFactor

	size = min(size, ref*t.MaxFontRatio)
	return max(size, t.MinFontSize)
}

func wordCountScale(n int, s WordCountScaling) float64 {
	if n <= s.Threshold {
		return s.MaxScale
	}
	return max(s.MinScale, s.MaxScale*math.Log(float64(s.Threshold))/math.Log(float64(n)))
}
