package cloud

import (
	"cmp"
	"io"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/core/geom"
)

// Placed is a word committed to the canvas.
type Placed struct {
	Word
	X, Y       float64
	FontSize   float64
	Rotation   float64
	Width      float64
	Height     float64
	Box        geom.Box
	Normalized float64
	Attempts   int
}

// Center returns the label center.
func (p Placed) Center() geom.Point { return geom.Point{X: p.X, Y: p.Y} }

// Result is the outcome of a [Build] call.
//
// Placed is in processing order (descending value, ties in input order).
// Attempts is keyed by word text; duplicate texts accumulate.
type Result struct {
	Width, Height float64
	Margin        float64
	Scale         ScaleType
	Rotation      RotationMode
	Seed          uint64
	Placed        []Placed
	Dropped       []Word
	Attempts      map[string]int
	Stats         Stats
}

// Option configures a [Build] call.
type Option func(*builder)

// WithRandom injects the random source used for rotation choice.
func WithRandom(r Random) Option { return func(b *builder) { b.rng = r } }

// WithSeed makes the layout reproducible by seeding a PCG source.
func WithSeed(seed uint64) Option {
	return func(b *builder) {
		b.rng = NewRand(seed)
		b.seed = seed
	}
}

// WithTunables replaces [DefaultTunables].
func WithTunables(t Tunables) Option { return func(b *builder) { b.tun = t } }

// WithLogger logs dropped words at debug level.
func WithLogger(l *log.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

type builder struct {
	tun    Tunables
	rng    Random
	seed   uint64
	logger *log.Logger
}

// Build lays out words on a width x height canvas.
//
// Words are processed in descending value order. Each word gets a font size
// from its normalized value, is measured, and is then tried at successive
// spiral positions; the valid candidate closest to the center wins. A word
// with no valid candidate within the attempt budget is dropped. Placed boxes
// never overlap and never leave the margin-inset canvas.
//
// Invalid numeric configuration is replaced with documented defaults (see
// [FontConfig.Normalized] and [PackingConfig.Normalized]); Build never fails.
// A nil measure falls back to a fixed glyph-width estimate.
func Build(words []Word, width, height float64, font FontConfig, packing PackingConfig, rotation RotationMode, scale ScaleType, measure Measurer, opts ...Option) Result {
	b := builder{tun: DefaultTunables()}
	for _, opt := range opts {
		opt(&b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if b.logger == nil {
		b.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if measure == nil {
		measure = ApproxMeasurer(DefaultCharWidth)
	}
	if rotation == "" {
		rotation = RotateOrthogonal
	}
	if scale == "" {
		scale = ScaleLinear
	}
	font = font.Normalized()
	packing = packing.normalized(b.tun)

	res := Result{
		Width:    width,
		Height:   height,
		Margin:   b.tun.margin(width, height, packing.Factor),
		Scale:    scale,
		Rotation: rotation,
		Seed:     b.seed,
		Placed:   make([]Placed, 0, len(words)),
		Attempts: make(map[string]int, len(words)),
	}
	if len(words) == 0 {
		return res
	}

	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b Word) int { return cmp.Compare(b.Value, a.Value) })
	minV, maxV := sorted[len(sorted)-1].Value, sorted[0].Value

	p := placer{
		builder: b,
		res:     &res,
		packing: packing,
		mode:    rotation,
		center:  geom.Point{X: width / 2, Y: height / 2},
	}
	p.earlyRadius = min(width, height) * b.tun.EarlyAcceptRadius

	for _, w := range sorted {
		v := Normalize(w.Value, minV, maxV, scale)
		size := b.tun.FontSize(width, height, len(sorted), font, v)
		mw, mh := measure(w.Text, size)

		placed, attempts, ok := p.place(w, v, mw, mh)
		res.Attempts[w.Text] += attempts
		if !ok {
			res.Dropped = append(res.Dropped, w)
			b.logger.Debug("dropped word", "text", w.Text, "value", w.Value, "attempts", attempts)
			continue
		}
		placed.FontSize = size
		res.Placed = append(res.Placed, placed)
	}

	res.Stats = ComputeStats(res)
	return res
}

type placer struct {
	builder
	res         *Result
	packing     PackingConfig
	mode        RotationMode
	center      geom.Point
	earlyRadius float64
	boxes       []geom.Box
}

// place runs the attempt loop for one word and reports the attempts consumed.
func (p *placer) place(w Word, v, mw, mh float64) (Placed, int, bool) {
	maxAttempts := p.packing.MaxAttempts
	earlyAttempts := p.tun.EarlyAcceptFraction * float64(maxAttempts)
	spacing := p.tun.spacing(mw, mh, v, p.packing)
	lo := p.res.Margin
	hiX, hiY := p.res.Width-p.res.Margin, p.res.Height-p.res.Margin

	var (
		best     Placed
		bestDist = math.Inf(1)
		found    bool
		attempts int
	)
	for attempt := range maxAttempts {
		attempts = attempt + 1
		c := p.tun.SpiralPosition(attempt, maxAttempts, v, p.res.Width, p.res.Height, p.packing, p.mode, p.rng)
		box := geom.RotatedBox(c.Center, mw, mh, c.Rotation, spacing)

		if box.Within(lo, lo, hiX, hiY) && !p.overlaps(box) {
			if d := c.Center.Dist(p.center); d < bestDist {
				bestDist = d
				found = true
				best = Placed{
					Word:       w,
					X:          c.Center.X,
					Y:          c.Center.Y,
					Rotation:   c.Rotation,
					Width:      mw,
					Height:     mh,
					Box:        box,
					Normalized: v,
				}
			}
		}
		if found && (bestDist <= p.earlyRadius || float64(attempts) >= earlyAttempts) {
			break
		}
	}
	if !found {
		return Placed{}, attempts, false
	}
	best.Attempts = attempts
	p.boxes = append(p.boxes, best.Box)
	return best, attempts, true
}

func (p *placer) overlaps(box geom.Box) bool {
	for _, other := range p.boxes {
		if geom.BoxesIntersect(box, other) {
			return true
		}
	}
	return false
}
