package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// fileConfig mirrors the TOML config file. Pointer fields tell an absent
// key apart from an explicit zero.
//
//	[font]
//	min = 2
//	max = 12
//
//	[packing]
//	factor = 1.2
//	strategy = "adaptive"
//
//	[layout]
//	width = 1200
//	rotation = "any"
//
//	[render]
//	palette = ["#264653", "#2a9d8f", "#e76f51"]
type fileConfig struct {
	Font    fontSection    `toml:"font"`
	Packing packingSection `toml:"packing"`
	Layout  layoutSection  `toml:"layout"`
	Render  renderSection  `toml:"render"`
}

type fontSection struct {
	Min         *float64 `toml:"min"`
	Max         *float64 `toml:"max"`
	ScaleFactor *float64 `toml:"scale_factor"`
	Scale       *string  `toml:"scale"`
	WordScaling *bool    `toml:"word_scaling"`
	MinScale    *float64 `toml:"min_scale"`
	MaxScale    *float64 `toml:"max_scale"`
	Threshold   *int     `toml:"threshold"`
}

type packingSection struct {
	Factor        *float64 `toml:"factor"`
	Strategy      *string  `toml:"strategy"`
	MinSpacing    *float64 `toml:"min_spacing"`
	BruteForce    *bool    `toml:"brute_force"`
	MaxAttempts   *int     `toml:"max_attempts"`
	SpiralDensity *float64 `toml:"spiral_density"`
}

type layoutSection struct {
	Width     *float64 `toml:"width"`
	Height    *float64 `toml:"height"`
	Rotation  *string  `toml:"rotation"`
	Measure   *string  `toml:"measure"`
	Seed      *uint64  `toml:"seed"`
	Randomize *bool    `toml:"randomize"`
	Top       *int     `toml:"top"`
}

type renderSection struct {
	Formats    []string `toml:"formats"`
	Palette    []string `toml:"palette"`
	Background *string  `toml:"background"`
	Boxes      *bool    `toml:"boxes"`
	Hover      *bool    `toml:"hover"`
	Titles     *bool    `toml:"titles"`
	PNGScale   *float64 `toml:"png_scale"`
}

// loadConfig reads a TOML config file. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func loadConfig(path string) (*fileConfig, error) {
	var cfg fileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// applyConfig loads the --config file, if any, into opts. Values from the
// file replace defaults but never a flag given on the command line.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options, formats *string) error {
	if c.configPath == "" {
		return nil
	}
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	cfg.apply(cmd, opts, formats)
	c.Logger.Debug("loaded config", "path", c.configPath)
	return nil
}

// apply copies every key present in the file onto opts unless the matching
// flag was set explicitly.
func (cfg *fileConfig) apply(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	font := cfg.Font
	override(cmd, "font-min", &opts.FontMin, font.Min)
	override(cmd, "font-max", &opts.FontMax, font.Max)
	override(cmd, "scale-factor", &opts.ScaleFactor, font.ScaleFactor)
	override(cmd, "scale", &opts.Scale, font.Scale)
	override(cmd, "word-scaling", &opts.WordScaling, font.WordScaling)
	override(cmd, "", &opts.MinScale, font.MinScale)
	override(cmd, "", &opts.MaxScale, font.MaxScale)
	override(cmd, "", &opts.ScaleThreshold, font.Threshold)

	p := cfg.Packing
	override(cmd, "packing", &opts.PackingFactor, p.Factor)
	override(cmd, "strategy", &opts.Strategy, p.Strategy)
	override(cmd, "min-spacing", &opts.MinSpacing, p.MinSpacing)
	override(cmd, "brute-force", &opts.BruteForce, p.BruteForce)
	override(cmd, "max-attempts", &opts.MaxAttempts, p.MaxAttempts)
	override(cmd, "spiral-density", &opts.SpiralDensity, p.SpiralDensity)

	l := cfg.Layout
	override(cmd, "width", &opts.Width, l.Width)
	override(cmd, "height", &opts.Height, l.Height)
	override(cmd, "rotation", &opts.Rotation, l.Rotation)
	override(cmd, "measure", &opts.Measure, l.Measure)
	override(cmd, "seed", &opts.Seed, l.Seed)
	override(cmd, "randomize", &opts.Randomize, l.Randomize)
	override(cmd, "top", &opts.TopN, l.Top)

	r := cfg.Render
	if r.Palette != nil && !changed(cmd, "palette") {
		opts.Palette = r.Palette
	}
	if r.Formats != nil && formats != nil && !changed(cmd, "format") {
		*formats = strings.Join(r.Formats, ",")
	}
	override(cmd, "background", &opts.Background, r.Background)
	override(cmd, "boxes", &opts.Boxes, r.Boxes)
	override(cmd, "hover", &opts.Hover, r.Hover)
	override(cmd, "titles", &opts.Titles, r.Titles)
	override(cmd, "png-scale", &opts.PNGScale, r.PNGScale)
}

// override sets *dst to *v when the file has the key and flag was not
// given. An empty flag name means the value has no flag.
func override[T any](cmd *cobra.Command, flag string, dst *T, v *T) {
	if v == nil || changed(cmd, flag) {
		return
	}
	*dst = *v
}

func changed(cmd *cobra.Command, flag string) bool {
	if flag == "" || cmd == nil {
		return false
	}
	return cmd.Flags().Changed(flag)
}
