// README: Nickel rounding used by the distance-rule fare formula.
package pricing

import "math"

const (
	nickel = 0.05
	// roundingEpsilon keeps values already sitting on a nickel boundary from
	// jumping a full step due to floating-point representation error.
	roundingEpsilon = 1e-8
)

// roundUpToNickel rounds v up to the next $0.05 increment.
func roundUpToNickel(v float64) float64 {
	return math.Ceil((v-roundingEpsilon)/nickel) * nickel
}
