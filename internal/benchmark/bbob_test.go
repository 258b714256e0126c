package benchmark

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthbench/bbob/internal/suite"
)

func TestNewErrors(t *testing.T) {
	_, err := New(BBOBConfig{Suite: "bbob-largescale"})
	assert.ErrorIs(t, err, suite.ErrUnknownSuite)

	_, err = NewMixInt(BBOBConfig{FuncIdx: 10_000})
	assert.ErrorIs(t, err, suite.ErrIndexOutOfRange)

	_, err = NewMixInt(BBOBConfig{SuiteOptions: "dimensions five"})
	assert.Error(t, err)
}

func TestDerivedParameterSpace(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)

	prob := b.Problem()
	n := prob.Dimension()
	k := prob.IntegerVariables()

	sp := b.ConfigurationSpace(0)
	params := sp.Parameters()
	require.Len(t, params, n)

	lb := prob.LowerBounds()
	ub := prob.UpperBounds()
	def := prob.InitialSolution()

	// One parameter per problem dimension, in positional order: the first
	// k integer, the rest continuous, bounds and defaults copied verbatim.
	for i, p := range params {
		if i < k {
			assert.Equal(t, fmt.Sprintf("Int_%d", i), p.Name)
			assert.Equal(t, Integer, p.Kind)
		} else {
			assert.Equal(t, fmt.Sprintf("Cont_%d", i), p.Name)
			assert.Equal(t, Continuous, p.Kind)
		}
		assert.Equal(t, lb[i], p.Lower)
		assert.Equal(t, ub[i], p.Upper)
		assert.Equal(t, def[i], p.Default)
	}
}

func TestConfigurationSpaceSeedAffectsSamplingOnly(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)

	s1 := b.ConfigurationSpace(1)
	s2 := b.ConfigurationSpace(2)
	assert.Equal(t, s1.Parameters(), s2.Parameters())
	assert.Equal(t, "BBOB Problem Instance Configuration Space", s1.Name())
}

func TestEvaluateDefaultMatchesProblem(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)

	res, err := b.Evaluate(b.ConfigurationSpace(0).DefaultConfiguration(), nil)
	require.NoError(t, err)

	want, err := b.Problem().Evaluate(b.Problem().InitialSolution())
	require.NoError(t, err)

	assert.Equal(t, want[0], res.FunctionValue)
	assert.Equal(t, want, res.FunctionValues)
}

func TestEvaluateCostIsAlwaysOne(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{FuncIdx: 3})
	require.NoError(t, err)

	sp := b.ConfigurationSpace(42)
	for i := 0; i < 20; i++ {
		res, err := b.Evaluate(sp.Sample(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.Cost)
	}
}

func TestEvaluateValidatesConfiguration(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)

	_, err = b.Evaluate(Configuration{"Int_0": 0}, nil)
	assert.ErrorIs(t, err, ErrMissingParameter)

	cfg := b.ConfigurationSpace(0).DefaultConfiguration()
	cfg["Int_0"] = -1
	_, err = b.Evaluate(cfg, nil)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestEvaluateEchoesOptions(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)

	seed := int64(123)
	fid := Fidelity{"FakeFidelity": "true"}
	cfg := b.ConfigurationSpace(0).DefaultConfiguration()

	res, err := b.Evaluate(cfg, &EvalOptions{Fidelity: fid, Seed: &seed})
	require.NoError(t, err)

	require.NotNil(t, res.Info.Seed)
	assert.Equal(t, seed, *res.Info.Seed)
	assert.Equal(t, cfg, res.Info.Configuration)
	assert.Equal(t, fid, res.Info.Fidelity)
}

func TestEvaluateOptionsDoNotChangeResult(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)

	cfg := b.ConfigurationSpace(0).DefaultConfiguration()
	seed := int64(7)

	plain, err := b.Evaluate(cfg, nil)
	require.NoError(t, err)
	seeded, err := b.Evaluate(cfg, &EvalOptions{Seed: &seed})
	require.NoError(t, err)

	assert.Equal(t, plain.FunctionValue, seeded.FunctionValue)
}

func TestEvaluateTestMatchesEvaluate(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{FuncIdx: 1})
	require.NoError(t, err)

	sp := b.ConfigurationSpace(0)
	for i := 0; i < 10; i++ {
		cfg := sp.Sample()
		train, err := b.Evaluate(cfg, nil)
		require.NoError(t, err)
		test, err := b.EvaluateTest(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, train.FunctionValue, test.FunctionValue)
		assert.Equal(t, train.FunctionValues, test.FunctionValues)
	}
}

func TestFidelitySpace(t *testing.T) {
	plain, err := NewMixInt(BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)
	assert.Zero(t, plain.FidelitySpace(0).Len())

	fake, err := NewMixInt(BBOBConfig{FuncIdx: 0, FakeFidelity: true})
	require.NoError(t, err)

	sp := fake.FidelitySpace(0)
	require.Equal(t, 1, sp.Len())
	p := sp.Parameters()[0]
	assert.Equal(t, "FakeFidelity", p.Name)
	assert.Equal(t, Categorical, p.Kind)
	assert.Equal(t, []string{"true"}, p.Choices)
	assert.Equal(t, "BBOB Problem Instance Fidelity Space", sp.Name())
}

func TestBiobjEvaluate(t *testing.T) {
	b, err := NewBiobjMixInt(BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)

	res, err := b.Evaluate(b.ConfigurationSpace(0).DefaultConfiguration(), nil)
	require.NoError(t, err)

	require.Len(t, res.FunctionValues, 2)
	assert.Equal(t, res.FunctionValues[0], res.FunctionValue)
	assert.Equal(t, 1.0, res.Cost)
}

func TestMeta(t *testing.T) {
	b, err := NewMixInt(BBOBConfig{
		FuncIdx:      2,
		Instance:     "instances: 1",
		SuiteOptions: "dimensions: 5",
		Seed:         42,
	})
	require.NoError(t, err)

	meta := b.Meta()
	assert.Equal(t, "BBOB Test Suite", meta.Name)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, suite.MixInt, meta.Suite)
	assert.Equal(t, 2, meta.FuncIdx)
	assert.Equal(t, "instances: 1", meta.Instance)
	assert.Equal(t, "dimensions: 5", meta.SuiteOptions)
	assert.NotNil(t, meta.References)
}
