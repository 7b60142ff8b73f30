package cloud

import (
	"reflect"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/model"
)

func TestExportParseRoundTrip(t *testing.T) {
	words := Words([]model.Word{
		{Text: "go", Value: 10, Color: "#00add8"},
		{Text: "rust", Value: 6},
		{Text: "zig", Value: 2},
	})
	res := Build(words, 600, 400, FontConfig{}, PackingConfig{}, RotateAny, ScaleLinear, nil, WithSeed(8))

	l := res.Export()
	if l.Rotation != "any" || l.Scale != "linear" || l.Seed != 8 {
		t.Errorf("exported metadata = %q/%q/%d", l.Rotation, l.Scale, l.Seed)
	}
	if len(l.Words) != len(res.Placed) || l.Words[0].Color != "#00add8" {
		t.Fatalf("exported words = %+v", l.Words)
	}

	back, err := Parse(l)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !reflect.DeepEqual(back.Placed, res.Placed) {
		t.Error("placed words changed after round trip")
	}
	if back.Stats != res.Stats {
		t.Errorf("stats = %+v, want %+v", back.Stats, res.Stats)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	if _, err := Parse(model.Layout{Width: 0, Height: 10}); err == nil {
		t.Error("zero width should fail")
	}
	bad := model.Layout{Width: 10, Height: 10, Words: []model.PlacedWord{{Text: "x"}}}
	if _, err := Parse(bad); err == nil {
		t.Error("missing box should fail")
	}
}
