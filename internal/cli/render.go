package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// renderCommand creates the render command, which runs layout and rendering in one go.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [words.json|words.csv|text.txt]",
		Short: "Render a word cloud directly from a word list",
		Long: `Render a word cloud directly from a word list.

This is the 'layout' and 'visualize' commands combined. Both stages are cached
locally, so re-rendering with different styling reuses the computed layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, &opts, &formatsStr); err != nil {
				return err
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addFormatFlag(cmd, &formatsStr)

	addInputFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := pipeline.ReadInput(input, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering word cloud...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		placed:    result.Stats.Placed,
		dropped:   result.Stats.Dropped,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Output
// =============================================================================

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	placed    int
	dropped   int
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format honors
// output as a file name; several formats share output as a base path.
func writeArtifacts(p artifactWriteParams) error {
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s artifact", format)
		}
		path := artifactPath(p.output, p.input, format, len(p.formats) == 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.placed, p.dropped, p.cacheHit)
	return nil
}

// artifactPath picks the output path for one format. JSON layouts get a
// ".layout.json" suffix so they never replace a words.json input.
func artifactPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	if format == pipeline.FormatJSON {
		return basePath(output, input) + ".layout.json"
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, the input extension (and a ".layout" infix) is stripped.
// If output has a format extension (.svg, .pdf, etc.), that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
