package cloud

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats summarizes a layout. It has no influence on placement.
type Stats struct {
	Placed          int
	Total           int
	Dropped         int
	AverageAttempts float64
	// Coverage is the percentage of the canvas covered by the axis-aligned
	// extents of placed boxes, rounded to one decimal.
	Coverage float64
}

// ComputeStats aggregates placement counts, attempts and coverage.
// Empty results yield zero values.
func ComputeStats(r Result) Stats {
	s := Stats{
		Placed:  len(r.Placed),
		Dropped: len(r.Dropped),
	}
	s.Total = s.Placed + s.Dropped
	if s.Total == 0 {
		return s
	}

	attempts := make([]float64, 0, len(r.Attempts))
	for _, n := range r.Attempts {
		attempts = append(attempts, float64(n))
	}
	s.AverageAttempts = floats.Sum(attempts) / float64(s.Total)

	if area := r.Width * r.Height; area > 0 && s.Placed > 0 {
		areas := make([]float64, len(r.Placed))
		for i, p := range r.Placed {
			areas[i] = p.Box.Area()
		}
		s.Coverage = math.Round(floats.Sum(areas)/area*1000) / 10
	}
	return s
}
