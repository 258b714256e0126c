package benchmark

import (
	"fmt"

	"github.com/synthbench/bbob/internal/suite"
)

// Space names used by the BBOB adapter.
const (
	configSpaceName   = "BBOB Problem Instance Configuration Space"
	fidelitySpaceName = "BBOB Problem Instance Fidelity Space"
)

// BBOBConfig selects one problem instance out of a BBOB suite.
type BBOBConfig struct {
	// Suite is the suite name, suite.MixInt or suite.BiobjMixInt.
	Suite string
	// FuncIdx is the index of the problem within the resolved collection.
	FuncIdx int
	// Instance optionally filters instance indices, e.g. "instances: 1,2".
	Instance string
	// SuiteOptions optionally filters the collection, e.g.
	// "dimensions: 5 function_indices: 1-3".
	SuiteOptions string
	// FakeFidelity attaches a constant single-choice fidelity parameter.
	// It is cosmetic and never consulted during evaluation.
	FakeFidelity bool
	// Seed is the initial random seed reported by Meta.
	Seed int64
}

// BBOB wraps a single problem instance from the bbob-mixint or the
// bbob-biobj-mixint suite into a benchmark object. The parameter space is
// derived from the problem's bounds once at construction, so it cannot be
// known without instantiating the benchmark.
type BBOB struct {
	cfg      BBOBConfig
	problem  suite.Problem
	params   []Parameter
	fidelity []Parameter
}

var _ Benchmark = (*BBOB)(nil)

// New resolves the configured suite, selects the problem at FuncIdx and
// derives the parameter space. An out-of-range FuncIdx surfaces the suite
// lookup error unchanged.
func New(cfg BBOBConfig) (*BBOB, error) {
	st, err := suite.New(cfg.Suite, cfg.Instance, cfg.SuiteOptions)
	if err != nil {
		return nil, wrapError(err, "resolving suite").WithOp("New")
	}

	prob, err := st.Problem(cfg.FuncIdx)
	if err != nil {
		return nil, err
	}

	b := &BBOB{
		cfg:     cfg,
		problem: prob,
		params:  deriveParameters(prob),
	}
	if cfg.FakeFidelity {
		b.fidelity = []Parameter{{
			Name:    "FakeFidelity",
			Kind:    Categorical,
			Choices: []string{"true"},
		}}
	}
	return b, nil
}

// NewMixInt creates a benchmark over the mixed-integer single-objective
// suite. Any Suite value in cfg is overridden.
func NewMixInt(cfg BBOBConfig) (*BBOB, error) {
	cfg.Suite = suite.MixInt
	return New(cfg)
}

// NewBiobjMixInt creates a benchmark over the mixed-integer bi-objective
// suite. Any Suite value in cfg is overridden.
func NewBiobjMixInt(cfg BBOBConfig) (*BBOB, error) {
	cfg.Suite = suite.BiobjMixInt
	return New(cfg)
}

// deriveParameters builds the ordered parameter sequence positionally
// aligned to the problem's dimensions: integer parameters Int_i for the
// first k dimensions, continuous parameters Cont_i for the rest. Bounds
// and defaults are copied verbatim from the problem.
func deriveParameters(p suite.Problem) []Parameter {
	n := p.Dimension()
	k := p.IntegerVariables()
	lb := p.LowerBounds()
	ub := p.UpperBounds()
	def := p.InitialSolution()

	params := make([]Parameter, n)
	for i := 0; i < k; i++ {
		params[i] = Parameter{
			Name:    fmt.Sprintf("Int_%d", i),
			Kind:    Integer,
			Lower:   lb[i],
			Upper:   ub[i],
			Default: def[i],
		}
	}
	for i := k; i < n; i++ {
		params[i] = Parameter{
			Name:    fmt.Sprintf("Cont_%d", i),
			Kind:    Continuous,
			Lower:   lb[i],
			Upper:   ub[i],
			Default: def[i],
		}
	}
	return params
}

// ConfigurationSpace implements Benchmark. A fresh space is returned on
// every call; the seed affects only its sampling behavior.
func (b *BBOB) ConfigurationSpace(seed int64) *Space {
	return NewSpace(configSpaceName, seed, b.params...)
}

// FidelitySpace implements Benchmark. The space is empty unless the
// benchmark was constructed with FakeFidelity.
func (b *BBOB) FidelitySpace(seed int64) *Space {
	return NewSpace(fidelitySpaceName, seed, b.fidelity...)
}

// Evaluate translates a benchmark call into a call to the underlying
// problem instance. The fidelity and seed in opts exist only for API
// compatibility; they are echoed back and never used.
func (b *BBOB) Evaluate(cfg Configuration, opts *EvalOptions) (*Result, error) {
	if err := b.ConfigurationSpace(b.cfg.Seed).Validate(cfg); err != nil {
		return nil, err
	}

	// Values are extracted in the derived parameter order, not map order,
	// so positions line up with the problem's coordinate vector.
	x := make([]float64, len(b.params))
	for i, p := range b.params {
		x[i] = cfg[p.Name]
	}

	y, err := b.problem.Evaluate(x)
	if err != nil {
		return nil, wrapError(err, "evaluating problem").WithOp("Evaluate")
	}

	if opts == nil {
		opts = &EvalOptions{}
	}
	return &Result{
		FunctionValue:  y[0],
		FunctionValues: y,
		Cost:           1.0,
		Info: Info{
			Seed:          opts.Seed,
			Configuration: cfg,
			Fidelity:      opts.Fidelity,
		},
	}, nil
}

// EvaluateTest implements Benchmark. Train and test evaluation coincide
// for the synthetic suites, so this simply forwards to Evaluate.
func (b *BBOB) EvaluateTest(cfg Configuration, opts *EvalOptions) (*Result, error) {
	return b.Evaluate(cfg, opts)
}

// Meta implements Benchmark.
func (b *BBOB) Meta() Meta {
	return Meta{
		Name:         "BBOB Test Suite",
		References:   []string{},
		Seed:         b.cfg.Seed,
		Suite:        b.cfg.Suite,
		FuncIdx:      b.cfg.FuncIdx,
		Instance:     b.cfg.Instance,
		SuiteOptions: b.cfg.SuiteOptions,
	}
}

// Problem exposes the resolved problem instance.
func (b *BBOB) Problem() suite.Problem {
	return b.problem
}
