// Package suite implements the bbob-mixint and bbob-biobj-mixint synthetic
// test-function suites: ordered collections of mixed-integer benchmark
// problems assembled from scalable continuous base functions.
//
// In a mixed-integer problem the first k of n variables are integer-valued
// with arities cycling through 2, 4, 8, 16 and 32, and the remaining n-k
// variables are continuous on [-5, 5]. Integer coordinates are affinely
// mapped onto [-5, 5] before the base function is applied, so every arity
// level spans the full variable range.
package suite

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Suite names accepted by New.
const (
	MixInt      = "bbob-mixint"
	BiobjMixInt = "bbob-biobj-mixint"
)

var (
	// ErrUnknownSuite is returned for suite names other than MixInt and
	// BiobjMixInt.
	ErrUnknownSuite = errors.New("unknown suite")
	// ErrIndexOutOfRange is returned when a problem index does not exist
	// in the resolved collection.
	ErrIndexOutOfRange = errors.New("problem index out of range")
	// ErrDimensionMismatch is returned when an evaluation vector has the
	// wrong length.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// integerArities are the cardinalities assigned to integer variables, in
// cycling order.
var integerArities = []int{2, 4, 8, 16, 32}

var (
	defaultDimensions = []int{5, 10, 20}
	defaultInstances  = []int{1, 2, 3}
)

// Problem is one selected test function with fixed dimensionality, bounds
// and integer/continuous variable split.
type Problem interface {
	// Name returns the problem identifier, e.g. "bbob-mixint_f003_i01_d05".
	Name() string
	// Index returns the one-based base-function index within the suite.
	Index() int
	// Dimension returns the number of variables n.
	Dimension() int
	// IntegerVariables returns k, the number of leading integer variables.
	IntegerVariables() int
	// NumObjectives returns 1 for bbob-mixint problems and 2 for
	// bbob-biobj-mixint problems.
	NumObjectives() int
	// LowerBounds and UpperBounds return per-dimension bounds, length n.
	LowerBounds() []float64
	UpperBounds() []float64
	// InitialSolution returns a feasible starting point, length n.
	InitialSolution() []float64
	// Evaluate computes the objective values at x. The returned slice has
	// NumObjectives entries.
	Evaluate(x []float64) ([]float64, error)
}

// Suite is an ordered, immutable collection of problems resolved from a
// suite name plus optional instance and option filters.
type Suite struct {
	name     string
	instance string
	options  string
	problems []Problem
}

// New resolves a suite. The instance filter accepts
// "instances: 1,2" (or "instance_indices:"); options accepts
// "dimensions: 5,10" and "function_indices: 1-3". Values may use commas
// and dash ranges but no spaces.
func New(name, instance, options string) (*Suite, error) {
	instFilter, err := parseFilter(instance)
	if err != nil {
		return nil, fmt.Errorf("parsing instance filter: %w", err)
	}
	optFilter, err := parseFilter(options)
	if err != nil {
		return nil, fmt.Errorf("parsing suite options: %w", err)
	}

	var nFuncs int
	switch name {
	case MixInt:
		nFuncs = len(baseFunctions)
	case BiobjMixInt:
		nFuncs = len(biobjPairs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, name)
	}

	funcIdxs := filterValues(optFilter, sequence(1, nFuncs), "function_indices")
	dims := filterValues(optFilter, defaultDimensions, "dimensions")
	instances := filterValues(instFilter, defaultInstances, "instances", "instance_indices")

	s := &Suite{name: name, instance: instance, options: options}
	for _, fi := range funcIdxs {
		for _, dim := range dims {
			for _, inst := range instances {
				var fns []baseFunction
				if name == MixInt {
					fns = []baseFunction{baseFunctions[fi-1]}
				} else {
					fns = []baseFunction{biobjPairs[fi-1][0], biobjPairs[fi-1][1]}
				}
				s.problems = append(s.problems, newProblem(name, fi, fns, dim, inst))
			}
		}
	}
	return s, nil
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// Len returns the number of problems in the resolved collection.
func (s *Suite) Len() int { return len(s.problems) }

// Problem returns the problem at idx.
func (s *Suite) Problem(idx int) (Problem, error) {
	if idx < 0 || idx >= len(s.problems) {
		return nil, fmt.Errorf("%w: index %d, suite %s has %d problems",
			ErrIndexOutOfRange, idx, s.name, len(s.problems))
	}
	return s.problems[idx], nil
}

type problem struct {
	id       string
	funcIdx  int
	dim      int
	nInt     int
	lower    []float64
	upper    []float64
	initial  []float64
	evals    []func([]float64) float64
	shifts   [][]float64 // per objective, zero at integer positions
}

func newProblem(suiteName string, funcIdx int, fns []baseFunction, dim, instance int) *problem {
	nInt := 4 * dim / 5

	p := &problem{
		id:      fmt.Sprintf("%s_f%03d_i%02d_d%02d", suiteName, funcIdx, instance, dim),
		funcIdx: funcIdx,
		dim:     dim,
		nInt:    nInt,
		lower:   make([]float64, dim),
		upper:   make([]float64, dim),
		initial: make([]float64, dim),
	}

	for i := 0; i < dim; i++ {
		if i < nInt {
			arity := integerArities[i%len(integerArities)]
			p.lower[i] = 0
			p.upper[i] = float64(arity - 1)
			p.initial[i] = math.Floor(float64(arity-1) / 2)
		} else {
			p.lower[i] = -5
			p.upper[i] = 5
			p.initial[i] = 0
		}
	}

	for _, fn := range fns {
		p.evals = append(p.evals, fn.eval)
		p.shifts = append(p.shifts, optimumShift(fn.id, instance, dim, nInt))
	}
	return p
}

// optimumShift produces the deterministic per-instance translation of the
// optimum. Integer positions are never shifted so their grid stays aligned
// with the variable arities.
func optimumShift(funcID, instance, dim, nInt int) []float64 {
	seed := int64(funcID)*1000003 + int64(instance)*10007 + int64(dim)
	rng := rand.New(rand.NewSource(seed))

	shift := make([]float64, dim)
	for i := nInt; i < dim; i++ {
		shift[i] = -4 + 8*rng.Float64()
	}
	return shift
}

func (p *problem) Name() string          { return p.id }
func (p *problem) Index() int            { return p.funcIdx }
func (p *problem) Dimension() int        { return p.dim }
func (p *problem) IntegerVariables() int { return p.nInt }
func (p *problem) NumObjectives() int    { return len(p.evals) }

func (p *problem) LowerBounds() []float64     { return append([]float64(nil), p.lower...) }
func (p *problem) UpperBounds() []float64     { return append([]float64(nil), p.upper...) }
func (p *problem) InitialSolution() []float64 { return append([]float64(nil), p.initial...) }

func (p *problem) Evaluate(x []float64) ([]float64, error) {
	if len(x) != p.dim {
		return nil, fmt.Errorf("%w: got %d values, problem has dimension %d",
			ErrDimensionMismatch, len(x), p.dim)
	}

	// Map integer coordinates from [0, arity-1] onto [-5, 5]; continuous
	// coordinates pass through unchanged.
	z := make([]float64, p.dim)
	for i, v := range x {
		if i < p.nInt {
			z[i] = -5 + 10*(v-p.lower[i])/(p.upper[i]-p.lower[i])
		} else {
			z[i] = v
		}
	}

	out := make([]float64, len(p.evals))
	buf := make([]float64, p.dim)
	for j, eval := range p.evals {
		floats.SubTo(buf, z, p.shifts[j])
		out[j] = eval(buf)
	}
	return out, nil
}

// parseFilter parses strings of the form "key: v1,v2 key2: a-b" into a map
// of index lists. An empty string yields an empty map.
func parseFilter(s string) (map[string][]int, error) {
	out := make(map[string][]int)
	fields := strings.Fields(s)
	for i := 0; i < len(fields); i++ {
		key, ok := strings.CutSuffix(fields[i], ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed filter element %q", fields[i])
		}
		if i+1 >= len(fields) {
			return nil, fmt.Errorf("filter key %q has no values", key)
		}
		i++
		vals, err := parseIndexList(fields[i])
		if err != nil {
			return nil, fmt.Errorf("filter key %q: %w", key, err)
		}
		out[key] = vals
	}
	return out, nil
}

// parseIndexList parses "1,3-5" into [1 3 4 5].
func parseIndexList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			a, err := strconv.Atoi(lo)
			if err != nil {
				return nil, fmt.Errorf("bad index %q", lo)
			}
			b, err := strconv.Atoi(hi)
			if err != nil {
				return nil, fmt.Errorf("bad index %q", hi)
			}
			if b < a {
				return nil, fmt.Errorf("bad range %q", part)
			}
			for v := a; v <= b; v++ {
				out = append(out, v)
			}
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad index %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

// filterValues intersects the default value set with the first matching
// filter key, preserving the defaults' order.
func filterValues(filter map[string][]int, defaults []int, keys ...string) []int {
	for _, key := range keys {
		wanted, ok := filter[key]
		if !ok {
			continue
		}
		keep := make(map[int]bool, len(wanted))
		for _, v := range wanted {
			keep[v] = true
		}
		var out []int
		for _, v := range defaults {
			if keep[v] {
				out = append(out, v)
			}
		}
		return out
	}
	return defaults
}

func sequence(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}
