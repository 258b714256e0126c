package suite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseFunctionOptima(t *testing.T) {
	zeros := []float64{0, 0, 0, 0, 0}
	ones := []float64{1, 1, 1, 1, 1}

	assert.Zero(t, sphere(zeros))
	assert.Zero(t, ellipsoid(zeros))
	assert.Zero(t, rastrigin(zeros))
	assert.Zero(t, rosenbrock(ones))
	assert.InDelta(t, 0, ackley(zeros), 1e-12)
	assert.Zero(t, griewank(zeros))
}

func TestBaseFunctionValues(t *testing.T) {
	assert.InDelta(t, 5.0, sphere([]float64{1, 2}), 1e-12)
	assert.InDelta(t, 1+1e6*4, ellipsoid([]float64{1, 2}), 1e-6)

	// rastrigin at integer offsets keeps the cosine term at 1.
	assert.InDelta(t, 5.0, rastrigin([]float64{1, 2}), 1e-9)

	// rosenbrock at the origin: 100*(0-0)^2 + (0-1)^2 per term.
	assert.InDelta(t, 4.0, rosenbrock(make([]float64, 5)), 1e-12)
}

func TestBaseFunctionsPositiveAwayFromOptimum(t *testing.T) {
	x := []float64{2.5, -1.5, 3.0, -0.5, 4.0}
	for _, fn := range baseFunctions {
		v := fn.eval(x)
		assert.False(t, math.IsNaN(v), "%s returned NaN", fn.name)
		assert.Greater(t, v, 0.0, "%s should be positive at %v", fn.name, x)
	}
}

func TestBiobjPairsWellFormed(t *testing.T) {
	assert.Len(t, biobjPairs, 4)
	for _, pair := range biobjPairs {
		assert.NotEqual(t, pair[0].id, pair[1].id)
	}
}
