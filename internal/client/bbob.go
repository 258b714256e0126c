package client

import "github.com/synthbench/bbob/internal/api"

// Benchmark and container identifiers for the BBOB suites. The container
// name is shared: both benchmarks ship in the same image.
const (
	MixIntBenchmarkName      = api.MixIntBenchmarkName
	BiobjMixIntBenchmarkName = api.BiobjMixIntBenchmarkName
	DefaultContainerName     = "bbob_benchmarks"
)

// NewBBOBMixIntClient returns a client for the mixed-integer
// single-objective suite. It fills in funcIdx and the default benchmark
// and container names; caller-supplied values in opts take precedence.
func NewBBOBMixIntClient(funcIdx int, opts Options) (*Client, error) {
	opts.FuncIdx = funcIdx
	if opts.BenchmarkName == "" {
		opts.BenchmarkName = MixIntBenchmarkName
	}
	if opts.ContainerName == "" {
		opts.ContainerName = DefaultContainerName
	}
	return New(opts)
}

// NewBBOBBiobjMixIntClient returns a client for the mixed-integer
// bi-objective suite. It fills in funcIdx and the default benchmark and
// container names; caller-supplied values in opts take precedence.
func NewBBOBBiobjMixIntClient(funcIdx int, opts Options) (*Client, error) {
	opts.FuncIdx = funcIdx
	if opts.BenchmarkName == "" {
		opts.BenchmarkName = BiobjMixIntBenchmarkName
	}
	if opts.ContainerName == "" {
		opts.ContainerName = DefaultContainerName
	}
	return New(opts)
}
