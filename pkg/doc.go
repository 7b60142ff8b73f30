// Package pkg provides the core libraries for wordcloud.
//
// # Overview
//
// Wordcloud places weighted words on a rectangular canvas so that no two
// labels overlap and every label stays inside the margins. Words are tried in
// order of importance along an expanding spiral centered on the canvas; a word
// that finds no free spot within its attempt budget is dropped, never forced.
//
// The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (geometry, placement engine, measurement, rendering)
//  2. [model] - Serialization types for word lists and layouts
//  3. [pipeline] - Orchestration (parse → layout → render) with caching
//  4. [cache], [store] - Caching backends and layout persistence
//  5. [server] - HTTP API over the pipeline and the store
//
// # Architecture
//
// The typical data flow:
//
//	Word list (JSON, CSV, plain text)
//	         ↓
//	    [model] package (read and count words)
//	         ↓
//	    [core/cloud] package (normalize, size, spiral search, statistics)
//	         ↓
//	    [core/render/sink] package (SVG, PNG, PDF)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Lay out a few words and render them to SVG:
//
//	import (
//	    "github.com/matzehuels/wordcloud/pkg/core/cloud"
//	    "github.com/matzehuels/wordcloud/pkg/core/measure"
//	    "github.com/matzehuels/wordcloud/pkg/core/render/sink"
//	)
//
//	words := []cloud.Word{{Text: "gopher", Value: 40}, {Text: "channel", Value: 25}}
//
//	// 1. Place the words
//	res := cloud.Build(words, 800, 600,
//	    cloud.FontConfig{}, cloud.PackingConfig{},
//	    cloud.RotateOrthogonal, cloud.ScaleLinear,
//	    measure.Approx(0.55), cloud.WithSeed(42))
//
//	// 2. Render to SVG
//	svg := sink.RenderSVG(res.Export())
//
// # Main Packages
//
// [core/geom] - Points, rotated bounding boxes, segment intersection and the
// convex polygon overlap test used for collision checks.
//
// [core/cloud] - The placement engine: value normalization, font sizing,
// spiral candidate generation, the placement loop and layout statistics.
//
// [core/measure] - Text measurement, either from the Go Regular OpenType face
// or a fixed per-character approximation.
//
// [core/render] - SVG output and conversion to PNG and PDF.
//
// [pipeline] - The parse → layout → render stages shared by the CLI and the
// HTTP API, including defaults, validation and cache keys.
//
// [errors] - Coded errors and validation of words and configuration.
//
// [observability] - Hooks for pipeline stages, cache lookups and HTTP requests.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/core
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/core/geom
// [core/cloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/core/cloud
// [core/measure]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/core/measure
// [core/render]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/core/render
// [core/render/sink]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/core/render/sink
// [model]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/model
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
package pkg
