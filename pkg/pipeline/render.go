package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/wordcloud/pkg/core/render/sink"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// RenderFromLayout generates artifacts for every requested format.
// Formats are rendered concurrently; the first failure cancels the rest.
func RenderFromLayout(ctx context.Context, l model.Layout, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, l, format, svgOpts, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., stored).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := model.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse layout")
	}
	return RenderFromLayout(ctx, parsed, opts)
}

func renderFormat(ctx context.Context, l model.Layout, format string, svgOpts []sink.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.PNGScale))
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return model.MarshalLayout(l)
	default:
		return nil, ValidateFormat(format)
	}
}

// buildSVGOptions maps render options to SVG sink options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if len(opts.Palette) > 0 {
		svgOpts = append(svgOpts, sink.WithPalette(opts.Palette...))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.Boxes {
		svgOpts = append(svgOpts, sink.WithBoxes())
	}
	if opts.Hover {
		svgOpts = append(svgOpts, sink.WithHover())
	}
	if opts.Titles {
		svgOpts = append(svgOpts, sink.WithTitles())
	}
	return svgOpts
}
