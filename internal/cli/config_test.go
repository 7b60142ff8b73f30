package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

const testConfig = `
[font]
min = 3
max = 10
word_scaling = true
threshold = 80

[packing]
factor = 1.4
strategy = "uniform"

[layout]
width = 1200
rotation = "any"
seed = 7

[render]
formats = ["svg", "png"]
palette = ["#111", "#222"]
boxes = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordcloud.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testCommand builds a command carrying every option flag.
func testCommand(opts *pipeline.Options, formats *string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVarP(formats, "format", "f", "", "")
	addInputFlags(cmd, opts)
	addLayoutFlags(cmd, opts)
	addRenderFlags(cmd, opts)
	return cmd
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Font.Min == nil || *cfg.Font.Min != 3 {
		t.Errorf("font.min = %v, want 3", cfg.Font.Min)
	}
	if cfg.Layout.Height != nil {
		t.Errorf("absent layout.height should stay nil, got %v", *cfg.Layout.Height)
	}
	if len(cfg.Render.Palette) != 2 {
		t.Errorf("render.palette = %v", cfg.Render.Palette)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errs.Code
	}{
		{"unknown key", "[font]\nsmallest = 2\n", errs.ErrCodeInvalidConfig},
		{"unknown section", "[colors]\nprimary = \"#fff\"\n", errs.ErrCodeInvalidConfig},
		{"bad syntax", "[font\nmin = 2\n", errs.ErrCodeInvalidConfig},
		{"wrong type", "[layout]\nwidth = \"wide\"\n", errs.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			if !errs.Is(err, tt.code) {
				t.Errorf("loadConfig error = %v, want code %s", err, tt.code)
			}
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestConfigApply(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}

	var opts pipeline.Options
	setCLIDefaults(&opts)
	var formats string
	cmd := testCommand(&opts, &formats)
	cfg.apply(cmd, &opts, &formats)

	if opts.FontMin != 3 || opts.FontMax != 10 {
		t.Errorf("font = %v..%v, want 3..10", opts.FontMin, opts.FontMax)
	}
	if !opts.WordScaling || opts.ScaleThreshold != 80 {
		t.Errorf("word scaling = %v/%d, want true/80", opts.WordScaling, opts.ScaleThreshold)
	}
	if opts.PackingFactor != 1.4 || opts.Strategy != "uniform" {
		t.Errorf("packing = %v/%q", opts.PackingFactor, opts.Strategy)
	}
	if opts.Width != 1200 || opts.Height != pipeline.DefaultHeight {
		t.Errorf("canvas = %vx%v, want 1200x%v", opts.Width, opts.Height, pipeline.DefaultHeight)
	}
	if opts.Rotation != "any" || opts.Seed != 7 {
		t.Errorf("rotation/seed = %q/%d", opts.Rotation, opts.Seed)
	}
	if formats != "svg,png" || !opts.Boxes || len(opts.Palette) != 2 {
		t.Errorf("render = %q boxes=%v palette=%v", formats, opts.Boxes, opts.Palette)
	}
}

func TestConfigFlagsWin(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}

	var opts pipeline.Options
	setCLIDefaults(&opts)
	var formats string
	cmd := testCommand(&opts, &formats)
	if err := cmd.ParseFlags([]string{"--width", "640", "--rotation", "none", "-f", "pdf", "--palette", "#abc"}); err != nil {
		t.Fatal(err)
	}
	cfg.apply(cmd, &opts, &formats)

	if opts.Width != 640 {
		t.Errorf("Width = %v, flag value 640 should win", opts.Width)
	}
	if opts.Rotation != "none" {
		t.Errorf("Rotation = %q, flag value should win", opts.Rotation)
	}
	if formats != "pdf" {
		t.Errorf("formats = %q, flag value should win", formats)
	}
	if len(opts.Palette) != 1 || opts.Palette[0] != "#abc" {
		t.Errorf("Palette = %v, flag value should win", opts.Palette)
	}
	if opts.FontMin != 3 {
		t.Errorf("FontMin = %v, file value should still apply", opts.FontMin)
	}
}

func TestApplyConfigWithoutFile(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	opts := pipeline.Options{Width: 500}
	if err := c.applyConfig(nil, &opts, nil); err != nil {
		t.Fatalf("applyConfig without --config: %v", err)
	}
	if opts.Width != 500 {
		t.Errorf("Width changed to %v", opts.Width)
	}
}
