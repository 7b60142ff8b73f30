package cloud

import (
	"fmt"
	"slices"

	"github.com/matzehuels/wordcloud/pkg/core/geom"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// Words converts serialized words to engine input.
func Words(in []model.Word) []Word {
	out := make([]Word, len(in))
	for i, w := range in {
		out[i] = Word{Text: w.Text, Value: w.Value, Color: w.Color}
	}
	return out
}

// Export converts the result to its serializable form.
func (r Result) Export() model.Layout {
	l := model.Layout{
		Width:    r.Width,
		Height:   r.Height,
		Margin:   r.Margin,
		Scale:    string(r.Scale),
		Rotation: string(r.Rotation),
		Seed:     r.Seed,
		Words:    make([]model.PlacedWord, len(r.Placed)),
		Attempts: r.Attempts,
		Stats: model.Stats{
			Placed:          r.Stats.Placed,
			Total:           r.Stats.Total,
			Dropped:         r.Stats.Dropped,
			AverageAttempts: r.Stats.AverageAttempts,
			Coverage:        r.Stats.Coverage,
		},
	}
	for i, p := range r.Placed {
		l.Words[i] = model.PlacedWord{
			Text:       p.Text,
			Value:      p.Value,
			Color:      p.Color,
			X:          p.X,
			Y:          p.Y,
			FontSize:   p.FontSize,
			Rotation:   p.Rotation,
			Width:      p.Width,
			Height:     p.Height,
			Normalized: p.Normalized,
			Attempts:   p.Attempts,
			Box:        slices.Clone(p.Box[:]),
		}
	}
	for _, w := range r.Dropped {
		l.Dropped = append(l.Dropped, model.Word{Text: w.Text, Value: w.Value, Color: w.Color})
	}
	return l
}

// Parse rebuilds a Result from its serialized form. Stats are recomputed.
func Parse(l model.Layout) (Result, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return Result{}, fmt.Errorf("layout must have positive dimensions, got %vx%v", l.Width, l.Height)
	}
	r := Result{
		Width:    l.Width,
		Height:   l.Height,
		Margin:   l.Margin,
		Scale:    ScaleType(l.Scale),
		Rotation: RotationMode(l.Rotation),
		Seed:     l.Seed,
		Placed:   make([]Placed, len(l.Words)),
		Dropped:  Words(l.Dropped),
		Attempts: l.Attempts,
	}
	if r.Attempts == nil {
		r.Attempts = make(map[string]int)
	}
	for i, w := range l.Words {
		if len(w.Box) != 4 {
			return Result{}, fmt.Errorf("word %q: box must have 4 corners, got %d", w.Text, len(w.Box))
		}
		r.Placed[i] = Placed{
			Word:       Word{Text: w.Text, Value: w.Value, Color: w.Color},
			X:          w.X,
			Y:          w.Y,
			FontSize:   w.FontSize,
			Rotation:   w.Rotation,
			Width:      w.Width,
			Height:     w.Height,
			Box:        geom.Box(w.Box),
			Normalized: w.Normalized,
			Attempts:   w.Attempts,
		}
	}
	r.Stats = ComputeStats(r)
	return r, nil
}
