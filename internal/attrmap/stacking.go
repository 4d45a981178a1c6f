package attrmap

import (
	"math"
	"sort"
)

// stackingPenaltyConstant is P = exp(-(1/2.67)^2) from spec §4.1.
var stackingPenaltyConstant = math.Exp(-math.Pow(1.0/2.67, 2))

// stackingPenaltyMultiplier aggregates a set of penalizable multiplier
// values (e.g. 1.10 for a +10% bonus) into the single combined
// multiplier spec §4.1 step g describes: split into positive and
// negative chains by sign of (value-1), sort each strongest-first,
// and dampen the n-th entry of each chain by P^(n^2).
func stackingPenaltyMultiplier(values []float64) float64 {
	var positive, negative []float64
	for _, v := range values {
		m := v - 1
		if m >= 0 {
			positive = append(positive, m)
		} else {
			negative = append(negative, m)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(positive)))
	sort.Float64s(negative)

	return stackingChain(positive) * stackingChain(negative)
}

// stackingChain applies the geometric dampening to one sign chain, at
// most 11 entries (spec: "for i > 10 stop").
func stackingChain(ms []float64) float64 {
	result := 1.0
	for i, m := range ms {
		if i > 10 {
			break
		}
		result *= 1 + m*math.Pow(stackingPenaltyConstant, float64(i*i))
	}
	return result
}
