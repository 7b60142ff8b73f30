package pipeline

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/measure"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout places words on the canvas described by opts and returns
// the serializable layout. opts must have passed ValidateForLayout.
func GenerateLayout(words []model.Word, opts Options) (model.Layout, error) {
	measurer, err := newMeasurer(opts.Measure)
	if err != nil {
		return model.Layout{}, err
	}

	res := cloud.Build(
		cloud.Words(words),
		opts.Width, opts.Height,
		opts.FontConfig(),
		opts.PackingConfig(),
		cloud.RotationMode(opts.Rotation),
		cloud.ScaleType(opts.Scale),
		measurer,
		cloud.WithSeed(opts.Seed),
		cloud.WithLogger(opts.Logger),
	)

	return res.Export(), nil
}

// newMeasurer resolves a measurer name to a text measurement function.
func newMeasurer(name string) (cloud.Measurer, error) {
	switch name {
	case MeasureApprox:
		return measure.Approx(measure.DefaultCharWidth), nil
	case MeasureFace, "":
		face, err := measure.Default()
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		return face.Measurer(), nil
	default:
		return nil, ValidateMeasure(name)
	}
}
