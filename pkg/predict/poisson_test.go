package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoissonPMFKnownValues(t *testing.T) {
	// Reference values for lambda = 1.5
	assert.InDelta(t, 0.22313, PoissonPMF(0, 1.5), 0.001)
	assert.InDelta(t, 0.33470, PoissonPMF(1, 1.5), 0.001)
	assert.InDelta(t, 0.25102, PoissonPMF(2, 1.5), 0.001)
}

func TestPoissonPMFDegenerateLambda(t *testing.T) {
	assert.Equal(t, 1.0, PoissonPMF(0, 0))
	assert.Equal(t, 0.0, PoissonPMF(3, 0))
	assert.Equal(t, 1.0, PoissonPMF(0, -0.5))
	assert.Equal(t, 0.0, PoissonPMF(1, -0.5))
}

func TestPoissonPMFLargeK(t *testing.T) {
	// Log-space evaluation must stay finite and tiny, not overflow.
	p := PoissonPMF(MaxGoals, 1.0)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1e-6)
}

func TestGoalProbabilitiesShape(t *testing.T) {
	probs := GoalProbabilities(1.5)
	require.Len(t, probs, MaxGoals+1)
}

func TestGoalProbabilitiesSumNearOne(t *testing.T) {
	for _, lambda := range []float64{0.1, 0.5, 1.0, 1.5, 2.0, 2.5, 3.0, 3.5} {
		probs := GoalProbabilities(lambda)
		var sum float64
		for _, p := range probs {
			sum += p
		}
		assert.Greater(t, sum, 0.99, "lambda=%v", lambda)
		assert.LessOrEqual(t, sum, 1.0, "lambda=%v", lambda)
	}
}
