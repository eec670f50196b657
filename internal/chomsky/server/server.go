package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"github.com/msto63/minilang/internal/chomsky/handler"
	"github.com/msto63/minilang/internal/chomsky/service"
	coreGrpc "github.com/msto63/minilang/pkg/core/grpc"
	"github.com/msto63/minilang/pkg/core/health"
	"github.com/msto63/minilang/pkg/core/logging"
	"github.com/msto63/minilang/pkg/core/version"
)

// Server is the Chomsky gRPC and HTTP server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	http      *http.Server
	health    *health.Registry
	logger    *logging.Logger
	config    Config
	startTime time.Time
}

// Config holds server configuration
type Config struct {
	Host            string
	GRPCPort        int
	HTTPPort        int
	ShutdownTimeout time.Duration
	Logger          *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		GRPCPort:        9300,
		HTTPPort:        8300,
		ShutdownTimeout: 10 * time.Second,
	}
}

// New creates a new Chomsky server around an analysis service
func New(cfg Config, svc *service.Service) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("chomsky-server")
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.GRPCPort
	grpcCfg.Logger = logger
	grpcServer := coreGrpc.NewServer(grpcCfg)

	registry := health.NewRegistry("chomsky", version.Chomsky)
	registry.Register(health.ErrorCheck("engine", svc.HealthCheck))

	s := &Server{
		service:   svc,
		grpc:      grpcServer,
		health:    registry,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}

	RegisterAnalyzerServer(grpcServer.GRPCServer(), s)

	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.HTTPPort),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Routes returns the HTTP handler: /healthz, /version and /ws
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /healthz", s.health.Handler(5*time.Second))
	mux.HandleFunc("GET /version", s.handleVersion)
	mux.Handle("/ws", handler.NewWebSocketHandler(s.service, s.logger))
	return mux
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(version.Get("chomsky"))
}

// Health runs all registered health checks
func (s *Server) Health(ctx context.Context) *health.Report {
	return s.health.Check(ctx)
}

// Start starts the gRPC and HTTP listeners in the background
func (s *Server) Start() error {
	if err := s.grpc.StartAsync(); err != nil {
		return mdwerror.Wrap(err, "failed to start gRPC server").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("server.Start")
	}

	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		s.grpc.Stop()
		return mdwerror.Wrap(err, "failed to start HTTP server").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("server.Start")
	}

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	s.logger.Info("Chomsky server started",
		"grpc", s.grpc.Address(),
		"http", listener.Addr().String(),
		"history", s.service.HasStore(),
	)
	return nil
}

// Stop shuts both listeners down within the configured timeout
func (s *Server) Stop(ctx context.Context) error {
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.grpc.StopWithTimeout(ctx)

	s.logger.Info("Chomsky server stopped", "uptime", time.Since(s.startTime).String())
	return err
}

// GRPCAddress returns the address the gRPC server listens on
func (s *Server) GRPCAddress() string {
	return s.grpc.Address()
}

// GRPC exposes the underlying gRPC server for in-process listeners
func (s *Server) GRPC() *coreGrpc.Server {
	return s.grpc
}
