// Package api defines the JSON-RPC 2.0 payloads exchanged between the
// benchmark server running inside a container and the out-of-process
// client.
package api

// RPC method names served at the /rpc endpoint.
const (
	MethodInitialize         = "benchmark.initialize"
	MethodConfigurationSpace = "benchmark.configuration_space"
	MethodFidelitySpace      = "benchmark.fidelity_space"
	MethodEvaluate           = "benchmark.evaluate"
	MethodEvaluateTest       = "benchmark.evaluate_test"
	MethodMeta               = "benchmark.meta"
)

// Benchmark names accepted by MethodInitialize.
const (
	MixIntBenchmarkName      = "BBOBMixIntBenchmark"
	BiobjMixIntBenchmarkName = "BBOBBiobjMixIntBenchmark"
)

// InitializeParams instantiates a benchmark inside the container.
type InitializeParams struct {
	BenchmarkName string `json:"benchmark_name"`
	FuncIdx       int    `json:"func_idx"`
	Instance      string `json:"instance,omitempty"`
	SuiteOptions  string `json:"suite_options,omitempty"`
	FakeFidelity  bool   `json:"fake_fidelity,omitempty"`
	Seed          int64  `json:"seed,omitempty"`
}

// InitializeResult returns the handle for subsequent calls.
type InitializeResult struct {
	BenchmarkID string `json:"benchmark_id"`
}

// SpaceParams requests a configuration or fidelity space.
type SpaceParams struct {
	BenchmarkID string `json:"benchmark_id"`
	Seed        int64  `json:"seed,omitempty"`
}

// Parameter is the wire form of one space parameter.
type Parameter struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Lower   float64  `json:"lower,omitempty"`
	Upper   float64  `json:"upper,omitempty"`
	Default float64  `json:"default,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// SpaceResult is the wire form of a parameter space.
type SpaceResult struct {
	Name       string      `json:"name"`
	Seed       int64       `json:"seed"`
	Parameters []Parameter `json:"parameters"`
}

// EvaluateParams requests one objective evaluation.
type EvaluateParams struct {
	BenchmarkID   string                 `json:"benchmark_id"`
	Configuration map[string]float64     `json:"configuration"`
	Fidelity      map[string]interface{} `json:"fidelity,omitempty"`
	Seed          *int64                 `json:"rng,omitempty"`
}

// EvaluateResult mirrors the benchmark result record.
type EvaluateResult struct {
	FunctionValue  float64   `json:"function_value"`
	FunctionValues []float64 `json:"function_values,omitempty"`
	Cost           float64   `json:"cost"`
	Info           Info      `json:"info"`
}

// Info echoes the evaluation inputs.
type Info struct {
	Seed          *int64                 `json:"rng,omitempty"`
	Configuration map[string]float64     `json:"config"`
	Fidelity      map[string]interface{} `json:"fidelity,omitempty"`
}

// MetaParams requests the static benchmark description.
type MetaParams struct {
	BenchmarkID string `json:"benchmark_id"`
}

// MetaResult is the wire form of the benchmark meta information.
type MetaResult struct {
	Name         string   `json:"name"`
	References   []string `json:"references"`
	Seed         int64    `json:"initial_random_seed"`
	Suite        string   `json:"suite"`
	FuncIdx      int      `json:"func_idx"`
	Instance     string   `json:"instance"`
	SuiteOptions string   `json:"suite_options"`
}
