package suite

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// baseFunction is one of the raw continuous test functions the
// mixed-integer suites are assembled from. Every function is scalable to
// arbitrary dimension and evaluated on [-5, 5]^n after the integer
// variables have been mapped onto that range.
type baseFunction struct {
	id   int
	name string
	eval func(z []float64) float64
}

var baseFunctions = []baseFunction{
	{1, "sphere", sphere},
	{2, "ellipsoid", ellipsoid},
	{3, "rastrigin", rastrigin},
	{4, "rosenbrock", rosenbrock},
	{5, "ackley", ackley},
	{6, "griewank", griewank},
}

// biobjPairs are the two-objective combinations served by the
// bbob-biobj-mixint suite.
var biobjPairs = [][2]baseFunction{
	{baseFunctions[0], baseFunctions[2]}, // sphere / rastrigin
	{baseFunctions[0], baseFunctions[3]}, // sphere / rosenbrock
	{baseFunctions[1], baseFunctions[4]}, // ellipsoid / ackley
	{baseFunctions[2], baseFunctions[5]}, // rastrigin / griewank
}

func sphere(z []float64) float64 {
	return floats.Dot(z, z)
}

func ellipsoid(z []float64) float64 {
	n := len(z)
	if n == 1 {
		return z[0] * z[0]
	}
	var sum float64
	for i, v := range z {
		sum += math.Pow(1e6, float64(i)/float64(n-1)) * v * v
	}
	return sum
}

func rastrigin(z []float64) float64 {
	sum := 10 * float64(len(z))
	for _, v := range z {
		sum += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return sum
}

func rosenbrock(z []float64) float64 {
	var sum float64
	for i := 0; i < len(z)-1; i++ {
		a := z[i+1] - z[i]*z[i]
		b := z[i] - 1
		sum += 100*a*a + b*b
	}
	return sum
}

func ackley(z []float64) float64 {
	n := float64(len(z))
	var sumCos float64
	for _, v := range z {
		sumCos += math.Cos(2 * math.Pi * v)
	}
	return -20*math.Exp(-0.2*math.Sqrt(floats.Dot(z, z)/n)) -
		math.Exp(sumCos/n) + 20 + math.E
}

func griewank(z []float64) float64 {
	prod := 1.0
	for i, v := range z {
		prod *= math.Cos(v / math.Sqrt(float64(i+1)))
	}
	return floats.Dot(z, z)/4000 - prod + 1
}
