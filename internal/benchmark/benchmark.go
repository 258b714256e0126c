// Package benchmark exposes synthetic optimization test functions through
// a uniform benchmark interface: a typed parameter space derived from the
// problem's bounds, and an evaluation contract returning the objective
// value at a fixed unit cost.
package benchmark

// Fidelity is an optional secondary evaluation input. The synthetic
// suites never consult it; it exists for interface compatibility only.
type Fidelity map[string]interface{}

// EvalOptions carries the optional evaluation inputs. Both fields are
// no-ops: they are echoed back in Result.Info and never influence the
// numeric computation.
type EvalOptions struct {
	Fidelity Fidelity
	Seed     *int64
}

// Info echoes the evaluation inputs for traceability.
type Info struct {
	Seed          *int64
	Configuration Configuration
	Fidelity      Fidelity
}

// Result is the outcome of a single evaluation.
type Result struct {
	// FunctionValue is the first objective value.
	FunctionValue float64
	// FunctionValues holds all objective values; length 1 for
	// single-objective problems.
	FunctionValues []float64
	// Cost is the constant evaluation cost, always 1.0.
	Cost float64
	Info Info
}

// Meta is the static description of a benchmark.
type Meta struct {
	Name         string
	References   []string
	Seed         int64
	Suite        string
	FuncIdx      int
	Instance     string
	SuiteOptions string
}

// Benchmark is the uniform interface over one selected problem instance.
type Benchmark interface {
	// ConfigurationSpace returns a fresh seedable space holding the
	// derived parameters. The seed affects sampling only.
	ConfigurationSpace(seed int64) *Space

	// FidelitySpace returns the (possibly empty) fidelity space.
	FidelitySpace(seed int64) *Space

	// Evaluate validates the configuration against the derived parameter
	// space and forwards it to the underlying problem.
	Evaluate(cfg Configuration, opts *EvalOptions) (*Result, error)

	// EvaluateTest has the same contract as Evaluate; the synthetic
	// suites have no held-out data.
	EvaluateTest(cfg Configuration, opts *EvalOptions) (*Result, error)

	// Meta returns the static benchmark description.
	Meta() Meta
}
