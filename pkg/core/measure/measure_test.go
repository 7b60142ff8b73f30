package measure

import (
	"math"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestApprox(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		text  string
		size  float64
		wantW float64
	}{
		{"ascii", 0.5, "abcd", 10, 20},
		{"runes not bytes", 0.5, "größe", 10, 25},
		{"default ratio", 0, "ab", 100, 110},
		{"empty", 0.5, "", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Approx(tt.ratio)(tt.text, tt.size)
			if math.Abs(w-tt.wantW) > 1e-9 || h != tt.size {
				t.Errorf("Approx(%v)(%q, %v) = %v, %v; want %v, %v", tt.ratio, tt.text, tt.size, w, h, tt.wantW, tt.size)
			}
		})
	}
}

func TestFaceMeasure(t *testing.T) {
	face, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	w, h := face.Measure("wordcloud", 32)
	if w <= 0 {
		t.Fatalf("width = %v, want positive", w)
	}
	if h != 32 {
		t.Errorf("height = %v, want font size", h)
	}

	wide, _ := face.Measure("WWWW", 32)
	narrow, _ := face.Measure("iiii", 32)
	if wide <= narrow {
		t.Errorf("WWWW (%v) should be wider than iiii (%v)", wide, narrow)
	}

	bigger, _ := face.Measure("wordcloud", 64)
	if math.Abs(bigger-2*w) > 0.1*w {
		t.Errorf("width should scale with size: %v at 64 vs %v at 32", bigger, w)
	}

	if w, _ := face.Measure("", 32); w != 0 {
		t.Errorf("empty text width = %v, want 0", w)
	}
}

func TestParseMonospace(t *testing.T) {
	face, err := Parse(gomono.TTF)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	a, _ := face.Measurer()("iiii", 20)
	b, _ := face.Measurer()("WWWW", 20)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("monospace widths differ: %v vs %v", a, b)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not a font")); err == nil {
		t.Error("Parse() should fail on garbage")
	}
}
