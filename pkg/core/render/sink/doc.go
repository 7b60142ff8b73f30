// Package sink renders a computed word cloud layout into output formats.
//
// # SVG Output
//
// [RenderSVG] writes one <text> element per placed word, centered on the
// word position with text-anchor="middle" and dominant-baseline="central"
// and rotated about that center, so the drawn label matches the footprint
// the placement engine reserved for it.
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithPalette("#264653", "#2a9d8f", "#e76f51"),
//	    sink.WithBackground("#ffffff"),
//	    sink.WithEmbeddedFont(),
//	)
//
// # SVG Options
//
//   - [WithPalette]: colors for words without an explicit color (default [DefaultPalette])
//   - [WithBackground]: fill the canvas before drawing
//   - [WithEmbeddedFont]: embed the measurement font as a base64 @font-face
//   - [WithHover]: dim other words while one is hovered
//   - [WithTitles]: add value tooltips
//   - [WithBoxes]: overlay padded bounding boxes and the margin, for debugging
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first and convert it with
// rsvg-convert (see [render.ToPDF] and [render.ToPNG]). The embedded font is
// always included because rsvg-convert only sees system fonts otherwise.
//
// [render.ToPDF]: github.com/matzehuels/wordcloud/pkg/core/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/wordcloud/pkg/core/render.ToPNG
package sink
