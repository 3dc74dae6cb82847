package foil

import "math"

// Entropy is the information-theoretic impurity of an example pool
// (§4.F). When either count is zero the pool is pure and entropy is
// defined as +∞, so it can never win an argmax comparison; callers
// discard empty extensions before scoring for exactly that reason.
func Entropy(positives, negatives int) float64 {
	if positives == 0 || negatives == 0 {
		return math.Inf(1)
	}
	return -math.Log2(float64(positives) / float64(positives+negatives))
}

// Gain is the information gain of extending a clause body with a
// candidate literal (§4.F): t * (H(p, n) - H(pᵢ, nᵢ)), where t is the
// number of positive examples covered both before and after the
// extension.
func Gain(positives, negatives, positivesAfter, negativesAfter []Example) float64 {
	t := len(common(positives, positivesAfter))
	if t == 0 {
		return 0
	}
	before := Entropy(len(positives), len(negatives))
	after := Entropy(len(positivesAfter), len(negativesAfter))
	return float64(t) * (before - after)
}

// Bound is an admissible upper bound on Gain, computed from the positive
// coverage alone (§4.F): entropy after refinement is never negative and
// the common count can never exceed len(positivesAfter), so no candidate
// whose bound falls below the incumbent best score can beat it once
// negative coverage is accounted for.
func Bound(positives, negatives, positivesAfter []Example) float64 {
	t := len(common(positives, positivesAfter))
	return float64(t) * Entropy(len(positives), len(negatives))
}
