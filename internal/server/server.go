// Package server hosts benchmarks behind the JSON-RPC 2.0 endpoint the
// container client talks to. One server holds a registry of live
// benchmark instances keyed by id; each instance owns its own resolved
// problem and parameter space exclusively.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/synthbench/bbob/internal/api"
	"github.com/synthbench/bbob/internal/benchmark"
	"github.com/synthbench/bbob/internal/config"
	"github.com/synthbench/bbob/internal/logging"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000
)

type entry struct {
	name      string
	benchmark benchmark.Benchmark
}

// Server serves benchmark instances over JSON-RPC.
type Server struct {
	cfg    *config.Config
	logger *logging.Logger

	mu         sync.RWMutex
	benchmarks map[string]entry
	seq        atomic.Int64
}

// New creates a server with an empty benchmark registry.
func New(cfg *config.Config, logger *logging.Logger) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		benchmarks: make(map[string]entry),
	}
}

// RegisterRoutes mounts the RPC endpoint on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/rpc", s.handleJSONRPC)
}

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, codeParseError, "Parse error", nil)
		return
	}
	if req.JSONRPC != "2.0" {
		s.respondWithError(w, codeInvalidRequest, "Invalid Request", req.ID)
		return
	}

	var (
		result interface{}
		err    error
	)
	switch req.Method {
	case api.MethodInitialize:
		result, err = s.handleInitialize(req.Params)
	case api.MethodConfigurationSpace:
		result, err = s.handleSpace(req.Params, false)
	case api.MethodFidelitySpace:
		result, err = s.handleSpace(req.Params, true)
	case api.MethodEvaluate:
		result, err = s.handleEvaluate(req.Params, false)
	case api.MethodEvaluateTest:
		result, err = s.handleEvaluate(req.Params, true)
	case api.MethodMeta:
		result, err = s.handleMeta(req.Params)
	default:
		s.respondWithError(w, codeMethodNotFound, "Method not found", req.ID)
		return
	}

	if err != nil {
		rpcErrorsTotal.WithLabelValues(req.Method).Inc()
		s.logger.Error("RPC call failed", map[string]interface{}{
			"method": req.Method,
			"error":  err.Error(),
		})
		s.respondWithError(w, codeServerError, err.Error(), req.ID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req.ID,
		"result":  result,
	})
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, id interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

func (s *Server) handleInitialize(raw json.RawMessage) (interface{}, error) {
	var p api.InitializeParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid initialize params: %w", err)
	}

	// Server-level suite defaults apply only when the request leaves the
	// filters empty.
	if p.Instance == "" {
		p.Instance = s.cfg.Suite.Instance
	}
	if p.SuiteOptions == "" {
		p.SuiteOptions = s.cfg.Suite.Options
	}

	cfg := benchmark.BBOBConfig{
		FuncIdx:      p.FuncIdx,
		Instance:     p.Instance,
		SuiteOptions: p.SuiteOptions,
		FakeFidelity: p.FakeFidelity,
		Seed:         p.Seed,
	}

	var (
		b   benchmark.Benchmark
		err error
	)
	switch p.BenchmarkName {
	case api.MixIntBenchmarkName:
		b, err = benchmark.NewMixInt(cfg)
	case api.BiobjMixIntBenchmarkName:
		b, err = benchmark.NewBiobjMixInt(cfg)
	default:
		return nil, fmt.Errorf("unknown benchmark %q", p.BenchmarkName)
	}
	if err != nil {
		return nil, err
	}

	id := fmt.Sprintf("bench_%d", s.seq.Add(1))
	s.mu.Lock()
	s.benchmarks[id] = entry{name: p.BenchmarkName, benchmark: b}
	s.mu.Unlock()

	initializationsTotal.WithLabelValues(p.BenchmarkName).Inc()
	s.logger.Info("Benchmark initialized", map[string]interface{}{
		"benchmark_id":   id,
		"benchmark_name": p.BenchmarkName,
		"func_idx":       p.FuncIdx,
	})

	return api.InitializeResult{BenchmarkID: id}, nil
}

func (s *Server) lookup(id string) (entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.benchmarks[id]
	if !ok {
		return entry{}, fmt.Errorf("benchmark %q not found", id)
	}
	return e, nil
}

func (s *Server) handleSpace(raw json.RawMessage, fidelity bool) (interface{}, error) {
	var p api.SpaceParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid space params: %w", err)
	}

	e, err := s.lookup(p.BenchmarkID)
	if err != nil {
		return nil, err
	}

	var sp *benchmark.Space
	if fidelity {
		sp = e.benchmark.FidelitySpace(p.Seed)
	} else {
		sp = e.benchmark.ConfigurationSpace(p.Seed)
	}

	params := sp.Parameters()
	out := api.SpaceResult{
		Name:       sp.Name(),
		Seed:       sp.Seed(),
		Parameters: make([]api.Parameter, len(params)),
	}
	for i, param := range params {
		out.Parameters[i] = api.Parameter{
			Name:    param.Name,
			Kind:    param.Kind.String(),
			Lower:   param.Lower,
			Upper:   param.Upper,
			Default: param.Default,
			Choices: param.Choices,
		}
	}
	return out, nil
}

func (s *Server) handleEvaluate(raw json.RawMessage, test bool) (interface{}, error) {
	var p api.EvaluateParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid evaluate params: %w", err)
	}

	e, err := s.lookup(p.BenchmarkID)
	if err != nil {
		return nil, err
	}

	opts := &benchmark.EvalOptions{
		Fidelity: p.Fidelity,
		Seed:     p.Seed,
	}

	var res *benchmark.Result
	if test {
		res, err = e.benchmark.EvaluateTest(p.Configuration, opts)
	} else {
		res, err = e.benchmark.Evaluate(p.Configuration, opts)
	}
	if err != nil {
		return nil, err
	}

	evaluationsTotal.WithLabelValues(e.name).Inc()
	return api.EvaluateResult{
		FunctionValue:  res.FunctionValue,
		FunctionValues: res.FunctionValues,
		Cost:           res.Cost,
		Info: api.Info{
			Seed:          res.Info.Seed,
			Configuration: res.Info.Configuration,
			Fidelity:      res.Info.Fidelity,
		},
	}, nil
}

func (s *Server) handleMeta(raw json.RawMessage) (interface{}, error) {
	var p api.MetaParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid meta params: %w", err)
	}

	e, err := s.lookup(p.BenchmarkID)
	if err != nil {
		return nil, err
	}

	meta := e.benchmark.Meta()
	return api.MetaResult{
		Name:         meta.Name,
		References:   meta.References,
		Seed:         meta.Seed,
		Suite:        meta.Suite,
		FuncIdx:      meta.FuncIdx,
		Instance:     meta.Instance,
		SuiteOptions: meta.SuiteOptions,
	}, nil
}

// Close drops all registered benchmarks.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.benchmarks = make(map[string]entry)
	return nil
}
