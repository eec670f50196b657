package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/msto63/minilang/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host              string
	Port              int
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	EnableReflection  bool
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
	Logger            *logging.Logger
}

// DefaultServerConfig returns a default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "0.0.0.0",
		Port:              9300,
		MaxRecvMsgSize:    4 * 1024 * 1024, // 4MB
		MaxSendMsgSize:    4 * 1024 * 1024, // 4MB
		EnableReflection:  true,
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Server wraps a gRPC server with additional functionality
type Server struct {
	server   *grpc.Server
	config   ServerConfig
	logger   *logging.Logger
	listener net.Listener
}

// NewServer creates a new gRPC server with recovery, request-ID and logging
// interceptors installed
func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Wrap(nil, "grpc-server")
	}

	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepaliveInterval,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(logger),
			RequestIDInterceptor(),
			LoggingInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(
			StreamRecoveryInterceptor(logger),
			StreamLoggingInterceptor(logger),
		),
	}

	serverOpts = append(serverOpts, opts...)

	server := grpc.NewServer(serverOpts...)

	if cfg.EnableReflection {
		reflection.Register(server)
	}

	return &Server{
		server: server,
		config: cfg,
		logger: logger,
	}
}

// GRPCServer returns the underlying gRPC server for service registration
func (s *Server) GRPCServer() *grpc.Server {
	return s.server
}

// Start listens on the configured address and serves until stopped
func (s *Server) Start() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener
	return s.server.Serve(listener)
}

// StartAsync starts the gRPC server in a goroutine
func (s *Server) StartAsync() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil {
			s.logger.Error("gRPC server error", "error", err)
		}
	}()

	return nil
}

func (s *Server) listen() (net.Listener, error) {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return listener, nil
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.server.GracefulStop()
}

// StopWithTimeout stops gracefully, forcing the stop when ctx expires
func (s *Server) StopWithTimeout(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-ctx.Done():
		s.server.Stop()
	}
}

// Address returns the server address
func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
