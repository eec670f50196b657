package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Checker is an interface for health checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type namedCheck struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &namedCheck{name: name, fn: fn}
}

func (c *namedCheck) Name() string {
	return c.name
}

func (c *namedCheck) Check(ctx context.Context) CheckResult {
	return c.fn(ctx)
}

// ErrorCheck adapts a func returning an error; nil is healthy
func ErrorCheck(name string, fn func(ctx context.Context) error) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		if err := fn(ctx); err != nil {
			return CheckResult{Status: StatusUnhealthy, Message: err.Error()}
		}
		return CheckResult{Status: StatusHealthy}
	})
}

// Registry manages multiple health checkers
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	service  string
	version  string
	startAt  time.Time
}

// NewRegistry creates a new health check registry
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		service:  service,
		version:  version,
		startAt:  time.Now(),
	}
}

// Register adds a checker to the registry, replacing one with the same name
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[checker.Name()] = checker
}

// RegisterFunc adds a check function to the registry
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Unregister removes a checker from the registry
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkers, name)
}

// Check runs all health checks concurrently and returns the overall status
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checkers := make([]Checker, 0, len(r.checkers))
	for _, c := range r.checkers {
		checkers = append(checkers, c)
	}
	r.mu.RUnlock()

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Uptime:    time.Since(r.startAt),
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, len(checkers)),
	}

	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			result.Timestamp = time.Now()
			if result.Name == "" {
				result.Name = c.Name()
			}
			if result.Status == "" {
				result.Status = StatusUnknown
			}
			report.Checks[i] = result
		}(i, checker)
	}
	wg.Wait()

	sort.Slice(report.Checks, func(i, j int) bool {
		return report.Checks[i].Name < report.Checks[j].Name
	})

	report.Status = StatusHealthy
	for _, result := range report.Checks {
		switch result.Status {
		case StatusUnhealthy:
			report.Status = StatusUnhealthy
		case StatusDegraded, StatusUnknown:
			if report.Status != StatusUnhealthy {
				report.Status = StatusDegraded
			}
		}
	}

	return report
}

// CheckWithTimeout runs all health checks with a timeout
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// Handler serves the report as JSON; unhealthy answers 503
func (r *Registry) Handler(timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		report := r.Check(ctx)
		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(report)
	})
}

// Report represents the overall health report
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Uptime    time.Duration `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// String returns a string representation of the report
func (r *Report) String() string {
	return fmt.Sprintf("Service: %s, Status: %s, Uptime: %v, Checks: %d",
		r.Service, r.Status, r.Uptime, len(r.Checks))
}

// TCPCheck creates a TCP connectivity check
func TCPCheck(name, address string, timeout time.Duration) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Details: map[string]interface{}{"address": address},
		}

		dialer := net.Dialer{Timeout: timeout}
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		conn.Close()

		result.Status = StatusHealthy
		result.Message = "TCP check passed"
		return result
	})
}
