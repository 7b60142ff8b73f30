package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// addInputFlags registers flags that shape how input files become words.
func addInputFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.TopN, "top", opts.TopN, "keep the N most frequent words of text input")
}

// addLayoutFlags registers the layout flags shared by layout, render and serve.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()

	// Canvas
	f.Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	f.Float64Var(&opts.Height, "height", opts.Height, "canvas height")

	// Font sizing
	f.Float64Var(&opts.FontMin, "font-min", opts.FontMin, "smallest font size, percent of the shorter side")
	f.Float64Var(&opts.FontMax, "font-max", opts.FontMax, "largest font size, percent of the shorter side")
	f.Float64Var(&opts.ScaleFactor, "scale-factor", opts.ScaleFactor, "global font size multiplier")
	f.BoolVar(&opts.WordScaling, "word-scaling", opts.WordScaling, "shrink fonts as the word count grows")
	f.StringVar(&opts.Scale, "scale", opts.Scale, "value scaling: linear (default), logarithmic")

	// Packing
	f.Float64Var(&opts.PackingFactor, "packing", opts.PackingFactor, "packing factor, below 1 is looser and above 1 is denser")
	f.StringVar(&opts.Strategy, "strategy", opts.Strategy, "spacing strategy: adaptive (default), uniform")
	f.Float64Var(&opts.MinSpacing, "min-spacing", opts.MinSpacing, "minimum gap between words")
	f.BoolVar(&opts.BruteForce, "brute-force", opts.BruteForce, "try every candidate instead of accepting early")
	f.IntVar(&opts.MaxAttempts, "max-attempts", opts.MaxAttempts, "spiral positions tried per word")
	f.Float64Var(&opts.SpiralDensity, "spiral-density", opts.SpiralDensity, "spiral turns over the search")
	f.StringVar(&opts.Rotation, "rotation", opts.Rotation, "rotation mode: orthogonal (default), any, none")

	// Engine
	f.StringVar(&opts.Measure, "measure", opts.Measure, "text measurer: face (default), approx")
	f.Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed (0 means 42, or a fresh seed with --randomize)")
	f.BoolVar(&opts.Randomize, "randomize", opts.Randomize, "draw a fresh seed on every run")

	enumCompletion(cmd, "scale", "linear", "logarithmic")
	enumCompletion(cmd, "strategy", "adaptive", "uniform")
	enumCompletion(cmd, "rotation", "orthogonal", "any", "none")
	enumCompletion(cmd, "measure", pipeline.MeasureFace, pipeline.MeasureApprox)
}

// addFormatFlag registers --format/-f for commands that write artifacts.
func addFormatFlag(cmd *cobra.Command, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	enumCompletion(cmd, "format", pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON)
}

// enumCompletion completes flag with a fixed set of values.
func enumCompletion(cmd *cobra.Command, flag string, values ...string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}

// addRenderFlags registers the styling flags shared by visualize and render.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.StringSliceVar(&opts.Palette, "palette", opts.Palette, "colors cycled over words without their own color")
	f.StringVar(&opts.Background, "background", opts.Background, "background color")
	f.BoolVar(&opts.Boxes, "boxes", opts.Boxes, "draw word bounding boxes")
	f.BoolVar(&opts.Hover, "hover", opts.Hover, "highlight words on hover")
	f.BoolVar(&opts.Titles, "titles", opts.Titles, "add value tooltips to words")
	f.Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "raster scale factor for PNG output")
}
