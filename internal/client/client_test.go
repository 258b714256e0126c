package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthbench/bbob/internal/benchmark"
	"github.com/synthbench/bbob/internal/config"
	"github.com/synthbench/bbob/internal/logging"
	"github.com/synthbench/bbob/internal/server"
)

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{ContainerName: "bbob_benchmarks"})
	assert.Error(t, err)

	_, err = New(Options{BenchmarkName: MixIntBenchmarkName})
	assert.Error(t, err)

	c, err := New(Options{BenchmarkName: MixIntBenchmarkName, ContainerName: "bbob_benchmarks"})
	require.NoError(t, err)
	assert.Equal(t, defaultServerAddr, c.Options().ServerAddr)
	assert.Equal(t, defaultTimeout, c.Options().Timeout)
}

func TestMixIntClientDefaults(t *testing.T) {
	c, err := NewBBOBMixIntClient(5, Options{})
	require.NoError(t, err)

	opts := c.Options()
	assert.Equal(t, "BBOBMixIntBenchmark", opts.BenchmarkName)
	assert.Equal(t, "bbob_benchmarks", opts.ContainerName)
	assert.Equal(t, 5, opts.FuncIdx)
	assert.Equal(t, "BBOBMixIntBenchmark@bbob_benchmarks", c.String())
}

func TestBiobjMixIntClientDefaults(t *testing.T) {
	c, err := NewBBOBBiobjMixIntClient(2, Options{})
	require.NoError(t, err)

	opts := c.Options()
	assert.Equal(t, "BBOBBiobjMixIntBenchmark", opts.BenchmarkName)
	assert.Equal(t, "bbob_benchmarks", opts.ContainerName)
	assert.Equal(t, 2, opts.FuncIdx)
}

func TestClientDefaultsKeepCallerValues(t *testing.T) {
	c, err := NewBBOBMixIntClient(0, Options{
		BenchmarkName: "CustomBenchmark",
		ContainerName: "custom_container",
	})
	require.NoError(t, err)

	opts := c.Options()
	assert.Equal(t, "CustomBenchmark", opts.BenchmarkName)
	assert.Equal(t, "custom_container", opts.ContainerName)
}

func newBenchmarkServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := server.New(&config.Config{Environment: "test"}, logging.NewNop())
	r := chi.NewRouter()
	srv.RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestClientServerRoundTrip(t *testing.T) {
	ts := newBenchmarkServer(t)
	ctx := context.Background()

	c, err := NewBBOBMixIntClient(0, Options{ServerAddr: ts.URL})
	require.NoError(t, err)

	sp, err := c.ConfigurationSpace(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 5, sp.Len())
	assert.Equal(t, int64(7), sp.Seed())

	params := sp.Parameters()
	assert.Equal(t, "Int_0", params[0].Name)
	assert.Equal(t, benchmark.Integer, params[0].Kind)
	assert.Equal(t, "Cont_4", params[4].Name)
	assert.Equal(t, benchmark.Continuous, params[4].Kind)

	res, err := c.Evaluate(ctx, sp.DefaultConfiguration(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Cost)

	// The remote result must agree with a local benchmark over the same
	// problem instance.
	local, err := benchmark.NewMixInt(benchmark.BBOBConfig{FuncIdx: 0})
	require.NoError(t, err)
	want, err := local.Evaluate(sp.DefaultConfiguration(), nil)
	require.NoError(t, err)
	assert.Equal(t, want.FunctionValue, res.FunctionValue)

	test, err := c.EvaluateTest(ctx, sp.DefaultConfiguration(), nil)
	require.NoError(t, err)
	assert.Equal(t, res.FunctionValue, test.FunctionValue)
}

func TestClientEvaluateEchoesOptions(t *testing.T) {
	ts := newBenchmarkServer(t)
	ctx := context.Background()

	c, err := NewBBOBMixIntClient(0, Options{ServerAddr: ts.URL})
	require.NoError(t, err)

	sp, err := c.ConfigurationSpace(ctx, 0)
	require.NoError(t, err)

	seed := int64(99)
	res, err := c.Evaluate(ctx, sp.DefaultConfiguration(), &benchmark.EvalOptions{Seed: &seed})
	require.NoError(t, err)

	require.NotNil(t, res.Info.Seed)
	assert.Equal(t, seed, *res.Info.Seed)
	assert.Equal(t, sp.DefaultConfiguration(), res.Info.Configuration)
}

func TestClientFidelitySpace(t *testing.T) {
	ts := newBenchmarkServer(t)
	ctx := context.Background()

	plain, err := NewBBOBMixIntClient(0, Options{ServerAddr: ts.URL})
	require.NoError(t, err)
	sp, err := plain.FidelitySpace(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, sp.Len())

	fake, err := NewBBOBMixIntClient(0, Options{ServerAddr: ts.URL, FakeFidelity: true})
	require.NoError(t, err)
	sp, err = fake.FidelitySpace(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, sp.Len())

	p := sp.Parameters()[0]
	assert.Equal(t, "FakeFidelity", p.Name)
	assert.Equal(t, benchmark.Categorical, p.Kind)
	assert.Equal(t, []string{"true"}, p.Choices)
}

func TestClientMeta(t *testing.T) {
	ts := newBenchmarkServer(t)
	ctx := context.Background()

	c, err := NewBBOBBiobjMixIntClient(1, Options{ServerAddr: ts.URL, Seed: 42})
	require.NoError(t, err)

	meta, err := c.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BBOB Test Suite", meta.Name)
	assert.Equal(t, "bbob-biobj-mixint", meta.Suite)
	assert.Equal(t, 1, meta.FuncIdx)
	assert.Equal(t, int64(42), meta.Seed)
}

func TestClientInitializesRemoteOnce(t *testing.T) {
	ts := newBenchmarkServer(t)
	ctx := context.Background()

	c, err := NewBBOBMixIntClient(0, Options{ServerAddr: ts.URL})
	require.NoError(t, err)

	_, err = c.Meta(ctx)
	require.NoError(t, err)
	first := c.benchmarkID
	require.NotEmpty(t, first)

	_, err = c.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, c.benchmarkID)
}

func TestClientRemoteError(t *testing.T) {
	ts := newBenchmarkServer(t)
	ctx := context.Background()

	c, err := New(Options{
		BenchmarkName: "NoSuchBenchmark",
		ContainerName: DefaultContainerName,
		ServerAddr:    ts.URL,
	})
	require.NoError(t, err)

	_, err = c.Meta(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchBenchmark")
}
