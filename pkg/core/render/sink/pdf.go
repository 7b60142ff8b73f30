package sink

import (
	"context"
	"slices"

	"github.com/matzehuels/wordcloud/pkg/core/render"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the layout as PDF via SVG conversion.
func RenderPDF(ctx context.Context, l model.Layout, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(l, append(slices.Clip(r.svgOpts), WithEmbeddedFont())...)
	return render.ToPDF(ctx, svg)
}
