package service

import (
	"context"
	"time"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
	"github.com/msto63/minilang/internal/chomsky/store"
	"github.com/msto63/minilang/pkg/core/cache"
	"github.com/msto63/minilang/pkg/core/logging"
)

// CheckRequest asks for a full analysis of one program
type CheckRequest struct {
	Name        string
	Source      string
	IncludeTree bool
}

// CheckResponse is the serializable outcome of a check
type CheckResponse struct {
	RunID          string            `json:"run_id,omitempty"`
	Name           string            `json:"name"`
	OK             bool              `json:"ok"`
	SyntaxError    string            `json:"syntax_error,omitempty"`
	SemanticErrors int               `json:"semantic_errors"`
	Diagnostics    []diag.Diagnostic `json:"diagnostics"`
	Symbols        map[string]string `json:"symbols"`
	Trace          string            `json:"trace"`
	Tally          ast.Tally         `json:"tally"`
	Tree           *ast.Exported     `json:"tree,omitempty"`
	Cached         bool              `json:"cached"`
	DurationMS     float64           `json:"duration_ms"`
}

// Stats summarizes service activity
type Stats struct {
	Cache cache.Stats `json:"cache"`
	Runs  int         `json:"runs"`
}

// Config holds service configuration
type Config struct {
	MaxInputLength int
	CacheMaxItems  int
	CacheTTL       time.Duration

	// Store persists every check; nil disables run history
	Store store.RunStore

	Logger *mdwlog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MaxInputLength: lang.DefaultMaxInputLength,
		CacheMaxItems:  256,
		CacheTTL:       10 * time.Minute,
	}
}

// Service is the Chomsky analysis service
type Service struct {
	engine  *lang.Engine
	results *cache.Cache[*lang.Result]
	store   store.RunStore
	logger  *logging.Logger

	maxInput int
}

// NewService creates a new analysis service
func NewService(cfg Config) *Service {
	base := cfg.Logger
	if base == nil {
		base = mdwlog.GetDefault()
	}

	maxInput := cfg.MaxInputLength
	if maxInput <= 0 {
		maxInput = lang.DefaultMaxInputLength
	}

	return &Service{
		engine: lang.New(lang.Options{
			Logger:         base,
			MaxInputLength: maxInput,
		}),
		results: cache.New[*lang.Result](cache.Config{
			MaxItems: cfg.CacheMaxItems,
			TTL:      cfg.CacheTTL,
		}),
		store:  cfg.Store,
		logger:   logging.Wrap(base.WithField("component", "chomsky"), "chomsky"),
		maxInput: maxInput,
	}
}

// MaxInputLength returns the largest source Check accepts, in bytes
func (s *Service) MaxInputLength() int {
	return s.maxInput
}

// Check analyzes a program. Identical sources are served from the cache;
// every check is recorded when a store is configured.
func (s *Service) Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	if req == nil {
		return nil, mdwerror.New("request is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("service.Check")
	}
	if err := ctx.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "check cancelled").
			WithCode(mdwerror.CodeTimeout).
			WithOperation("service.Check")
	}

	name := req.Name
	if name == "" {
		name = "<input>"
	}

	start := time.Now()
	hash := cache.ContentKey("", req.Source)
	key := "check:" + hash
	result, cached := s.results.Get(key)
	if !cached {
		var err error
		result, err = s.engine.Check(name, req.Source)
		if err != nil {
			s.logger.Warn("check rejected", "name", name, "error", err)
			return nil, err
		}
		s.results.Set(key, result)
	}

	resp := newResponse(name, result, req.IncludeTree)
	resp.Cached = cached
	resp.DurationMS = float64(time.Since(start).Nanoseconds()) / 1e6

	if s.store != nil {
		run := resp.toRun(req.Source, hash)
		if err := s.store.Save(ctx, run); err != nil {
			s.logger.Error("failed to record run", "name", name, "error", err)
			return nil, err
		}
		resp.RunID = run.ID
	}

	s.logger.Info("program checked",
		"name", name,
		"ok", resp.OK,
		"semantic_errors", resp.SemanticErrors,
		"cached", cached,
		"run_id", resp.RunID,
	)
	return resp, nil
}

// History returns the most recent runs, newest first
func (s *Service) History(ctx context.Context, limit int) ([]*store.Run, error) {
	if err := s.requireStore("service.History"); err != nil {
		return nil, err
	}
	return s.store.List(ctx, limit)
}

// GetRun returns a stored run
func (s *Service) GetRun(ctx context.Context, id string) (*store.Run, error) {
	if err := s.requireStore("service.GetRun"); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

// DeleteRun removes a stored run
func (s *Service) DeleteRun(ctx context.Context, id string) error {
	if err := s.requireStore("service.DeleteRun"); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Stats returns cache and history statistics
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Cache: s.results.Stats()}
	if s.store != nil {
		n, err := s.store.Count(ctx)
		if err != nil {
			return stats, err
		}
		stats.Runs = n
	}
	return stats, nil
}

// HealthCheck runs a tiny program through the engine and pings the store
func (s *Service) HealthCheck(ctx context.Context) error {
	result, err := s.engine.Check("healthcheck", "int x; set x 1; print x;")
	if err != nil {
		return err
	}
	if !result.OK() {
		return mdwerror.New("engine rejected the health check program").
			WithCode(mdwerror.CodeInternal).
			WithOperation("service.HealthCheck")
	}
	if s.store != nil {
		return s.store.Ping(ctx)
	}
	return nil
}

// HasStore reports whether run history is enabled
func (s *Service) HasStore() bool {
	return s.store != nil
}

// Close releases the cache and the store
func (s *Service) Close() error {
	s.results.Close()
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

func (s *Service) requireStore(op string) error {
	if s.store == nil {
		return mdwerror.New("run history is disabled").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation(op)
	}
	return nil
}

func newResponse(name string, result *lang.Result, includeTree bool) *CheckResponse {
	resp := &CheckResponse{
		Name:           name,
		OK:             result.OK(),
		SemanticErrors: result.SemanticErrors,
		Diagnostics:    result.Diagnostics,
		Symbols:        result.Symbols.Types(),
		Trace:          result.Trace,
		Tally:          result.Tally,
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []diag.Diagnostic{}
	}
	if result.SyntaxError != nil {
		resp.SyntaxError = result.SyntaxError.Error()
	}
	if includeTree && result.Tree != nil {
		resp.Tree = ast.Export(result.Tree)
	}
	return resp
}

func (r *CheckResponse) toRun(source, hash string) *store.Run {
	return &store.Run{
		Name:           r.Name,
		Source:         source,
		SourceHash:     hash,
		OK:             r.OK,
		SyntaxError:    r.SyntaxError,
		SemanticErrors: r.SemanticErrors,
		Diagnostics:    r.Diagnostics,
		Symbols:        r.Symbols,
		Trace:          r.Trace,
		Tally:          r.Tally,
	}
}
