package cloud

import (
	"math"

	"github.com/matzehuels/wordcloud/pkg/core/geom"
)

// Candidate is one proposed label position.
type Candidate struct {
	Center   geom.Point
	Rotation float64
}

// Radius bounds for the packing factor used by the spiral and margin.
const (
	minFactor = 0.1
	maxFactor = 1.9
)

// bruteForceAngles are cycled through in quarters of the attempt budget.
var bruteForceAngles = [4]float64{0, 45, 90, -45}

// SpiralPosition returns the candidate for attempt using [DefaultTunables].
func SpiralPosition(attempt, maxAttempts int, normalized, width, height float64, packing PackingConfig, mode RotationMode, rng Random) Candidate {
	return DefaultTunables().SpiralPosition(attempt, maxAttempts, normalized, width, height, packing, mode, rng)
}

// SpiralPosition places attempt on an Archimedes-like spiral around the
// canvas center. The radius saturates toward MaxRadiusRatio of the shorter
// side, is non-decreasing in attempt and non-increasing in normalized.
func (t Tunables) SpiralPosition(attempt, maxAttempts int, normalized, width, height float64, packing PackingConfig, mode RotationMode, rng Random) Candidate {
	packing = packing.normalized(t)
	if maxAttempts <= 0 {
		maxAttempts = packing.MaxAttempts
	}
	progress := float64(attempt) / float64(maxAttempts)
	angle := progress * 2 * math.Pi * t.density(packing)
	r := t.radius(progress, normalized, min(width, height), packing.Factor)

	sin, cos := math.Sincos(angle)
	return Candidate{
		Center:   geom.Point{X: width/2 + r*cos, Y: height/2 + r*sin},
		Rotation: rotation(attempt, maxAttempts, packing.BruteForce, mode, rng),
	}
}

func (t Tunables) density(p PackingConfig) float64 {
	return p.SpiralDensity * (2 - clamp(p.Factor, minFactor, maxFactor))
}

func (t Tunables) radius(progress, normalized, shorter, factor float64) float64 {
	f := clamp(factor, minFactor, maxFactor)
	rMax := shorter * t.MaxRadiusRatio
	r0 := min(shorter*t.InitialRadiusRatio*f, rMax)
	pull := 1 - t.ImportancePull*clamp(normalized, 0, 1)
	growth := 1 - math.Exp(-t.GrowthRate*progress*pull/f)
	return min(r0+(rMax-r0)*growth, rMax)
}

// margin is the inset from every canvas edge that placed boxes must respect.
// Denser packing (larger factor) shrinks it.
func (t Tunables) margin(width, height, factor float64) float64 {
	pct := clamp(t.BaseMarginPercent*(2-clamp(factor, minFactor, maxFactor)), 0, 0.1)
	return min(width, height) * pct
}

// spacing is the padding added on every side of a label's box.
func (t Tunables) spacing(w, h, normalized float64, p PackingConfig) float64 {
	s := max(p.MinSpacing, min(w, h)*t.SpacingRatio) * p.Factor
	if p.Strategy == StrategyAdaptive {
		s *= t.AdaptiveBase + (1-t.AdaptiveBase)*normalized
	}
	if s <= 0 {
		return max(w, h) * t.DefaultPaddingRatio
	}
	return s
}

func rotation(attempt, maxAttempts int, bruteForce bool, mode RotationMode, rng Random) float64 {
	switch mode {
	case RotateNone:
		return 0
	case RotateAny:
		if bruteForce {
			bucket := min(3, attempt/max(1, maxAttempts/4))
			return bruteForceAngles[bucket] + jitter(rng, 5)
		}
		if rng.Float64() < 0.5 {
			return jitter(rng, 2.5)
		}
		return 90 + jitter(rng, 2.5)
	default:
		if rng.Float64() < 0.5 {
			return jitter(rng, 1)
		}
		return -90 + jitter(rng, 1)
	}
}

// jitter returns a uniform offset in [-amount, amount).
func jitter(rng Random, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}
