// Package cloud implements the word cloud placement engine.
//
// # Overview
//
// [Build] takes a list of weighted words and a canvas size and returns the
// words it could place without overlap, each with a center, rotation, font
// size and padded footprint. Larger values get larger fonts and first claim
// on positions near the center.
//
// The pipeline for one word is:
//
//  1. [Normalize] its value against the min and max of the word set
//  2. resolve a [FontSize] from the normalized value
//  3. measure the text with the caller's [Measurer]
//  4. walk [SpiralPosition] candidates until one fits, keeping the fit
//     closest to the center
//
// Words that never fit within PackingConfig.MaxAttempts are dropped. This is
// an expected outcome on crowded canvases, not an error.
//
// # Randomness
//
// Rotation choice is the only random element. Pass [WithSeed] or
// [WithRandom] to make a layout reproducible:
//
//	res := cloud.Build(words, 800, 600, cloud.FontConfig{}, cloud.PackingConfig{},
//	    cloud.RotateOrthogonal, cloud.ScaleLinear, measure.Approx(0.55),
//	    cloud.WithSeed(42),
//	)
//
// # Defaults
//
// Build does not validate its configuration. Zero or inconsistent fields are
// replaced with the defaults documented on [FontConfig.Normalized] and
// [PackingConfig.Normalized]; heuristic constants come from [Tunables].
// Callers that want to reject bad input should use the validators in
// pkg/errors before calling Build.
package cloud
