// Package client provides an out-of-process client for benchmarks served
// from inside a container. The generic Client speaks JSON-RPC 2.0 to the
// in-container benchmark server; the suite-specific constructors fix the
// identifying arguments and delegate everything else to it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/synthbench/bbob/internal/api"
	"github.com/synthbench/bbob/internal/benchmark"
	"github.com/synthbench/bbob/internal/errors"
	"github.com/synthbench/bbob/internal/logging"
)

const (
	defaultServerAddr = "http://localhost:8080"
	defaultTimeout    = 60 * time.Second
)

// Options configures a Client. BenchmarkName and ContainerName identify
// the benchmark to instantiate and the container image serving it; the
// remaining fields are forwarded to the remote constructor.
type Options struct {
	BenchmarkName string
	ContainerName string
	// ServerAddr is the base URL of the container's RPC server.
	ServerAddr   string
	FuncIdx      int
	Instance     string
	SuiteOptions string
	FakeFidelity bool
	Seed         int64
	Timeout      time.Duration
	HTTPClient   *http.Client
	Logger       *logging.Logger
}

// Client is a thin remote-invocation proxy. It owns no benchmark logic:
// every call is marshalled to the server inside the container and the
// result repackaged. No retries, no internal concurrency.
type Client struct {
	opts   Options
	http   *http.Client
	logger *logging.Logger

	mu          sync.Mutex
	benchmarkID string
	nextID      atomic.Int64
}

// New validates the options and prepares the transport. The remote
// benchmark is instantiated lazily on the first call, so construction
// itself performs no network I/O.
func New(opts Options) (*Client, error) {
	if opts.BenchmarkName == "" {
		return nil, errors.New("benchmark name is required").WithComponent("client")
	}
	if opts.ContainerName == "" {
		return nil, errors.New("container name is required").WithComponent("client")
	}
	if opts.ServerAddr == "" {
		opts.ServerAddr = defaultServerAddr
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Client{opts: opts, http: httpc, logger: logger}, nil
}

// Options returns the resolved options the client was built with.
func (c *Client) Options() Options {
	return c.opts
}

// ensureBenchmark instantiates the remote benchmark once and caches its
// handle.
func (c *Client) ensureBenchmark(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.benchmarkID != "" {
		return c.benchmarkID, nil
	}

	c.logger.Debug("Initializing remote benchmark", map[string]interface{}{
		"benchmark_name": c.opts.BenchmarkName,
		"container_name": c.opts.ContainerName,
		"func_idx":       c.opts.FuncIdx,
	})

	var res api.InitializeResult
	err := c.call(ctx, api.MethodInitialize, api.InitializeParams{
		BenchmarkName: c.opts.BenchmarkName,
		FuncIdx:       c.opts.FuncIdx,
		Instance:      c.opts.Instance,
		SuiteOptions:  c.opts.SuiteOptions,
		FakeFidelity:  c.opts.FakeFidelity,
		Seed:          c.opts.Seed,
	}, &res)
	if err != nil {
		return "", err
	}

	c.benchmarkID = res.BenchmarkID
	return c.benchmarkID, nil
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int64       `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) call(ctx context.Context, method string, params, out interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrapf(err, "encoding %s request", method).WithComponent("client")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.ServerAddr+"/rpc", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building request").WithComponent("client")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "calling %s", method).WithComponent("client")
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return errors.Wrapf(err, "decoding %s response", method).WithComponent("client")
	}
	if rpcResp.Error != nil {
		return errors.Errorf("rpc %s failed: %s (code %d)",
			method, rpcResp.Error.Message, rpcResp.Error.Code).WithComponent("client")
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return errors.Wrapf(err, "decoding %s result", method).WithComponent("client")
		}
	}
	return nil
}

// ConfigurationSpace fetches the remote benchmark's configuration space.
func (c *Client) ConfigurationSpace(ctx context.Context, seed int64) (*benchmark.Space, error) {
	return c.space(ctx, api.MethodConfigurationSpace, seed)
}

// FidelitySpace fetches the remote benchmark's fidelity space.
func (c *Client) FidelitySpace(ctx context.Context, seed int64) (*benchmark.Space, error) {
	return c.space(ctx, api.MethodFidelitySpace, seed)
}

func (c *Client) space(ctx context.Context, method string, seed int64) (*benchmark.Space, error) {
	id, err := c.ensureBenchmark(ctx)
	if err != nil {
		return nil, err
	}

	var res api.SpaceResult
	if err := c.call(ctx, method, api.SpaceParams{BenchmarkID: id, Seed: seed}, &res); err != nil {
		return nil, err
	}

	params := make([]benchmark.Parameter, len(res.Parameters))
	for i, p := range res.Parameters {
		kind, err := benchmark.ParseKind(p.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %s", p.Name).WithComponent("client")
		}
		params[i] = benchmark.Parameter{
			Name:    p.Name,
			Kind:    kind,
			Lower:   p.Lower,
			Upper:   p.Upper,
			Default: p.Default,
			Choices: p.Choices,
		}
	}
	return benchmark.NewSpace(res.Name, res.Seed, params...), nil
}

// Evaluate forwards one evaluation to the remote benchmark.
func (c *Client) Evaluate(ctx context.Context, cfg benchmark.Configuration, opts *benchmark.EvalOptions) (*benchmark.Result, error) {
	return c.evaluate(ctx, api.MethodEvaluate, cfg, opts)
}

// EvaluateTest forwards one test evaluation to the remote benchmark.
func (c *Client) EvaluateTest(ctx context.Context, cfg benchmark.Configuration, opts *benchmark.EvalOptions) (*benchmark.Result, error) {
	return c.evaluate(ctx, api.MethodEvaluateTest, cfg, opts)
}

func (c *Client) evaluate(ctx context.Context, method string, cfg benchmark.Configuration, opts *benchmark.EvalOptions) (*benchmark.Result, error) {
	id, err := c.ensureBenchmark(ctx)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &benchmark.EvalOptions{}
	}

	var res api.EvaluateResult
	err = c.call(ctx, method, api.EvaluateParams{
		BenchmarkID:   id,
		Configuration: cfg,
		Fidelity:      opts.Fidelity,
		Seed:          opts.Seed,
	}, &res)
	if err != nil {
		return nil, err
	}

	return &benchmark.Result{
		FunctionValue:  res.FunctionValue,
		FunctionValues: res.FunctionValues,
		Cost:           res.Cost,
		Info: benchmark.Info{
			Seed:          res.Info.Seed,
			Configuration: res.Info.Configuration,
			Fidelity:      res.Info.Fidelity,
		},
	}, nil
}

// Meta fetches the remote benchmark's static description.
func (c *Client) Meta(ctx context.Context) (*benchmark.Meta, error) {
	id, err := c.ensureBenchmark(ctx)
	if err != nil {
		return nil, err
	}

	var res api.MetaResult
	if err := c.call(ctx, api.MethodMeta, api.MetaParams{BenchmarkID: id}, &res); err != nil {
		return nil, err
	}
	return &benchmark.Meta{
		Name:         res.Name,
		References:   res.References,
		Seed:         res.Seed,
		Suite:        res.Suite,
		FuncIdx:      res.FuncIdx,
		Instance:     res.Instance,
		SuiteOptions: res.SuiteOptions,
	}, nil
}

// String identifies the client for logging.
func (c *Client) String() string {
	return fmt.Sprintf("%s@%s", c.opts.BenchmarkName, c.opts.ContainerName)
}
