package model

import "math"

// Upper bounds enforced by Validate. A trace or grid is allocated up front,
// so these cap the memory one run can take.
const (
	MaxSteps    = 100_000
	MaxGridSize = 100_000
)

func allFinite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
