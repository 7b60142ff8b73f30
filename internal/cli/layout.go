package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/model"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// layoutCommand creates the layout command for computing word placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		save    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [words.json|words.csv|text.txt]",
		Short: "Compute a word cloud layout from a word list",
		Long: `Compute a word cloud layout from a word list.

The input is a JSON array of {"text", "value"} objects, a CSV or TSV file with
text,value[,color] rows, or plain text whose words are counted. The output is
a layout.json file (same format as 'render -f json') that can be rendered to
SVG/PNG/PDF using the 'visualize' command.

Results are cached locally for faster subsequent runs. Use --save to keep the
layout in the local layout store served by 'serve'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, &opts, nil); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, save)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&save, "save", false, "also save the layout to the local layout store")

	addInputFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout reads the words, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, save bool) error {
	if err := pipeline.ReadInput(input, &opts); err != nil {
		return err
	}
	opts.Logger = c.Logger

	words, err := pipeline.ParseWords(ctx, opts)
	if err != nil {
		return fmt.Errorf("read words %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(words)))
	spinner.Start()

	prog := newProgress(c.Logger)
	layout, cacheHit, err := runner.LayoutWithCacheInfo(ctx, words, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Placed %d of %d words", layout.Stats.Placed, layout.Stats.Total))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}

	if save {
		if err := saveLayout(ctx, &layout); err != nil {
			return err
		}
	}

	if err := model.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Words), len(layout.Dropped), cacheHit)
	if layout.ID != "" {
		printDetail("Saved as %s", layout.ID)
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// saveLayout stores l in the default file store, assigning its ID.
func saveLayout(ctx context.Context, l *model.Layout) error {
	st, err := store.NewFileStore("")
	if err != nil {
		return fmt.Errorf("open layout store: %w", err)
	}
	defer st.Close()
	if err := st.Save(ctx, l); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}
