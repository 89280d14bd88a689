package predict

import "math"

// MaxGoals is the truncation ceiling for the per-side goal distribution.
// Realistic expected-goal values (lambda <= 3.5) leave under 0.1% of the
// probability mass beyond 10 goals.
const MaxGoals = 10

// PoissonPMF returns P(X = k) for X ~ Poisson(lambda).
// Computed in log-space via the log-gamma function so the full truncation
// range stays numerically stable; direct factorial/power evaluation
// overflows long before k reaches useful values.
func PoissonPMF(k int, lambda float64) float64 {
	if lambda <= 0 {
		if k == 0 {
			return 1.0
		}
		return 0.0
	}
	lgamma, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lgamma)
}

// GoalProbabilities returns the truncated Poisson distribution over goal
// counts 0..MaxGoals. The vector sums to slightly less than 1; the
// upper-tail mass beyond MaxGoals is discarded.
func GoalProbabilities(lambda float64) []float64 {
	probs := make([]float64, MaxGoals+1)
	for k := 0; k <= MaxGoals; k++ {
		probs[k] = PoissonPMF(k, lambda)
	}
	return probs
}
