package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/msto63/minilang/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/protobuf/types/known/structpb"
)

// ClientConfig holds gRPC client configuration
type ClientConfig struct {
	Target            string
	Timeout           time.Duration
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
	Logger            *logging.Logger
}

// DefaultClientConfig returns a default client configuration
func DefaultClientConfig(target string) ClientConfig {
	return ClientConfig{
		Target:            target,
		Timeout:           30 * time.Second,
		MaxRecvMsgSize:    4 * 1024 * 1024, // 4MB
		MaxSendMsgSize:    4 * 1024 * 1024, // 4MB
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Dial creates a new gRPC client connection. The connection is established
// lazily on the first call.
func Dial(cfg ClientConfig, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(cfg.MaxRecvMsgSize),
			grpc.MaxCallSendMsgSize(cfg.MaxSendMsgSize),
		),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveInterval,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithChainUnaryInterceptor(
			ClientRequestIDInterceptor(),
			ClientLoggingInterceptor(cfg.Logger),
		),
	}

	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(cfg.Target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.Target, err)
	}

	return conn, nil
}

// DialSimple creates a client connection with the default configuration
func DialSimple(target string) (*grpc.ClientConn, error) {
	return Dial(DefaultClientConfig(target))
}

// StructClient calls unary methods whose request and response are both
// google.protobuf.Struct
type StructClient struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// NewStructClient creates a StructClient on an existing connection
func NewStructClient(conn grpc.ClientConnInterface, timeout time.Duration) *StructClient {
	return &StructClient{conn: conn, timeout: timeout}
}

// Invoke calls method with req converted to a Struct and returns the
// response as a plain map
func (c *StructClient) Invoke(ctx context.Context, method string, req map[string]interface{}) (map[string]interface{}, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("encode request for %s: %w", method, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
