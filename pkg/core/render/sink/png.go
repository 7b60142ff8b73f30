package sink

import (
	"context"
	"slices"

	"github.com/matzehuels/wordcloud/pkg/core/render"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the layout as PNG via SVG conversion.
// The embedded font is always included so rsvg-convert matches measurement.
func RenderPNG(ctx context.Context, l model.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(l, append(slices.Clip(r.svgOpts), WithEmbeddedFont())...)
	return render.ToPNG(ctx, svg, r.scale)
}
