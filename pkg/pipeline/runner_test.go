package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/model"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

func testWords() []model.Word {
	return []model.Word{
		{Text: "gopher", Value: 40},
		{Text: "channel", Value: 25},
		{Text: "goroutine", Value: 18},
		{Text: "interface", Value: 12},
		{Text: "slice", Value: 8},
		{Text: "map", Value: 5},
	}
}

func testRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestExecute(t *testing.T) {
	r := testRunner(cache.NewMemoryCache(0))
	opts := Options{
		Words:   testWords(),
		Measure: MeasureApprox,
		Formats: []string{FormatSVG, FormatJSON},
	}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.WordCount != len(testWords()) {
		t.Errorf("WordCount = %d, want %d", res.Stats.WordCount, len(testWords()))
	}
	if res.Stats.Placed+res.Stats.Dropped != res.Stats.WordCount {
		t.Errorf("placed %d + dropped %d != %d", res.Stats.Placed, res.Stats.Dropped, res.Stats.WordCount)
	}
	if res.WordsHash == "" {
		t.Error("WordsHash should be set")
	}
	if res.Layout.Seed != DefaultSeed {
		t.Errorf("layout seed = %d, want %d", res.Layout.Seed, DefaultSeed)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", res.CacheInfo)
	}

	svg := string(res.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, ">gopher</text>") {
		t.Errorf("unexpected svg artifact:\n%s", svg)
	}
	parsed, err := model.UnmarshalLayout(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(parsed.Words) != res.Stats.Placed {
		t.Errorf("json artifact has %d words, want %d", len(parsed.Words), res.Stats.Placed)
	}
}

func TestExecuteFromText(t *testing.T) {
	r := testRunner(nil)
	res, err := r.Execute(context.Background(), Options{
		Text:    "gopher gopher gopher channel channel select",
		Measure: MeasureApprox,
		TopN:    2,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Words) != 2 || res.Words[0].Text != "gopher" || res.Words[0].Value != 3 {
		t.Errorf("words = %+v, want gopher(3) and channel(2)", res.Words)
	}
}

func TestParseCachesCountedText(t *testing.T) {
	ctx := context.Background()
	r := testRunner(cache.NewMemoryCache(0))
	opts := Options{Text: "gopher gopher channel", Measure: MeasureApprox}

	first, hit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first parse should miss")
	}
	second, hit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second parse should hit")
	}
	if len(first) != len(second) || second[0] != first[0] {
		t.Errorf("cached words differ: %+v vs %+v", first, second)
	}

	// Explicit lists bypass the words cache.
	if _, hit, _ := r.ParseWithCacheInfo(ctx, Options{Words: testWords()}); hit {
		t.Error("explicit word lists should not hit the words cache")
	}
}

func TestExecuteEmpty(t *testing.T) {
	r := testRunner(nil)
	res, err := r.Execute(context.Background(), Options{Measure: MeasureApprox})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Layout.Words) != 0 || res.Stats.Placed != 0 {
		t.Errorf("empty input should give an empty layout, got %d words", len(res.Layout.Words))
	}
	if len(res.Artifacts[FormatSVG]) == 0 {
		t.Error("empty layout should still render an svg")
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := testRunner(nil)
	if _, err := r.Execute(context.Background(), Options{Width: 10}); err == nil {
		t.Error("tiny canvas should fail")
	}
	if _, err := r.Execute(context.Background(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestLayoutCaching(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache(0)
	r := testRunner(mc)
	opts := Options{Measure: MeasureApprox}

	first, hit, err := r.LayoutWithCacheInfo(ctx, testWords(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first layout should miss")
	}

	second, hit, err := r.LayoutWithCacheInfo(ctx, testWords(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second layout should hit")
	}
	if len(first.Words) != len(second.Words) {
		t.Fatalf("cached layout differs: %d vs %d words", len(first.Words), len(second.Words))
	}
	for i := range first.Words {
		a, b := first.Words[i], second.Words[i]
		if a.Text != b.Text || a.X != b.X || a.Y != b.Y || a.FontSize != b.FontSize {
			t.Errorf("word %d differs after cache round trip: %+v vs %+v", i, a, b)
		}
	}

	// A different option is a different key.
	other := opts
	other.Seed = 99
	if _, hit, _ := r.LayoutWithCacheInfo(ctx, testWords(), other); hit {
		t.Error("different seed should miss")
	}
}

func TestLayoutRandomizeBypassesCache(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache(0)
	r := testRunner(mc)
	opts := Options{Measure: MeasureApprox, Randomize: true}

	for range 2 {
		_, hit, err := r.LayoutWithCacheInfo(ctx, testWords(), opts)
		if err != nil {
			t.Fatal(err)
		}
		if hit {
			t.Error("randomized layout should never hit")
		}
	}
	if mc.Len() != 0 {
		t.Errorf("randomized layout should not be stored, cache has %d entries", mc.Len())
	}
}

func TestLayoutDeterministic(t *testing.T) {
	ctx := context.Background()
	r := testRunner(nil)
	opts := Options{Measure: MeasureFace, Seed: 1234, Rotation: "any"}

	a, err := r.Layout(ctx, testWords(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Layout(ctx, testWords(), opts)
	if err != nil {
		t.Fatal(err)
	}
	da, _ := model.MarshalLayout(a)
	db, _ := model.MarshalLayout(b)
	if string(da) != string(db) {
		t.Error("same seed should give identical layouts")
	}
}

func TestRenderCaching(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache(0)
	r := testRunner(mc)
	opts := Options{Measure: MeasureApprox, Formats: []string{FormatSVG, FormatJSON}}

	layout, err := r.Layout(ctx, testWords(), opts)
	if err != nil {
		t.Fatal(err)
	}

	first, hit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first render should miss")
	}

	// Storage metadata does not change the artifact key.
	layout.ID = "stored"
	layout.CreatedAt = time.Now()
	second, hit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second render should hit")
	}
	if string(first[FormatSVG]) != string(second[FormatSVG]) {
		t.Error("cached svg differs")
	}

	opts.Background = "#000"
	if _, hit, _ := r.RenderWithCacheInfo(ctx, layout, opts); hit {
		t.Error("different background should miss")
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	ctx := context.Background()
	opts := Options{Measure: MeasureApprox}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	layout, err := GenerateLayout(testWords(), opts)
	if err != nil {
		t.Fatal(err)
	}
	data, err := model.MarshalLayout(layout)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderFromLayoutData(ctx, data, opts)
	if err != nil {
		t.Fatalf("RenderFromLayoutData: %v", err)
	}
	if len(artifacts[FormatSVG]) == 0 {
		t.Error("missing svg artifact")
	}

	if _, err := RenderFromLayoutData(ctx, []byte("{}"), opts); err == nil {
		t.Error("layout without dimensions should fail")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnParseStart(context.Context, string) { h.record("parse") }
func (h *recordingHooks) OnLayoutStart(context.Context, int)   { h.record("layout") }
func (h *recordingHooks) OnRenderStart(context.Context, []string) {
	h.record("render")
}
func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string)  { h.record("hit:" + keyType) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, keyType string) { h.record("miss:" + keyType) }

func TestExecuteEmitsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r := testRunner(cache.NewMemoryCache(0))
	opts := Options{Words: testWords(), Measure: MeasureApprox}
	for range 2 {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"parse", "layout", "miss:layout", "render", "miss:artifact",
		"parse", "layout", "hit:layout", "render", "hit:artifact",
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if strings.Join(h.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v\nwant     %v", h.events, want)
	}
}
