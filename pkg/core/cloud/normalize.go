package cloud

import "math"

const logEpsilon = 1e-6

// Normalize maps value into [0,1] relative to [minValue, maxValue].
//
// Equal bounds yield 0.5 and non-positive values yield 0, regardless of
// scale. The logarithmic scale clamps every operand to 1e-6 before taking
// the logarithm.
func Normalize(value, minValue, maxValue float64, scale ScaleType) float64 {
	if minValue == maxValue {
		return 0.5
	}
	if value <= 0 {
		return 0
	}
	if scale == ScaleLogarithmic {
		value = math.Log(max(value, logEpsilon))
		minValue = math.Log(max(minValue, logEpsilon))
		maxValue = math.Log(max(maxValue, logEpsilon))
		if minValue == maxValue {
			return 0.5
		}
	}
	return clamp((value-minValue)/(maxValue-minValue), 0, 1)
}
