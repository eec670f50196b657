package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type echoService interface{}

type echoImpl struct{}

func echoHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		s := req.(*structpb.Struct)
		switch s.Fields["mode"].GetStringValue() {
		case "panic":
			panic("boom")
		case "missing":
			return nil, ToStatus(mdwerror.New("no such run").WithCode(mdwerror.CodeNotFound))
		}
		s.Fields["request_id"] = structpb.NewStringValue(GetRequestID(ctx))
		return s, nil
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/test.v1.Echo/Echo"}
	if interceptor == nil {
		return handler(ctx, in)
	}
	return interceptor(ctx, in, info, handler)
}

var echoDesc = grpc.ServiceDesc{
	ServiceName: "test.v1.Echo",
	HandlerType: (*echoService)(nil),
	Methods:     []grpc.MethodDesc{{MethodName: "Echo", Handler: echoHandler}},
	Metadata:    "echo.proto",
}

func startEcho(t *testing.T) *StructClient {
	t.Helper()

	quiet := logging.Wrap(mdwlog.Discard(), "grpc-test")
	cfg := DefaultServerConfig()
	cfg.Logger = quiet
	srv := NewServer(cfg)
	srv.GRPCServer().RegisterService(&echoDesc, echoImpl{})

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	clientCfg := DefaultClientConfig("passthrough:///bufnet")
	clientCfg.Logger = quiet
	conn, err := Dial(clientCfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewStructClient(conn, 5*time.Second)
}

func TestServer_Echo(t *testing.T) {
	client := startEcho(t)

	out, err := client.Invoke(context.Background(), "/test.v1.Echo/Echo", map[string]interface{}{
		"name": "prog.ml",
		"n":    3,
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out["name"] != "prog.ml" || out["n"] != float64(3) {
		t.Errorf("Invoke() = %v", out)
	}
	if id, _ := out["request_id"].(string); len(id) != 36 {
		t.Errorf("request_id = %q, want a generated uuid", id)
	}
}

func TestServer_PropagatesRequestID(t *testing.T) {
	client := startEcho(t)

	ctx := WithRequestID(context.Background(), "req-42")
	out, err := client.Invoke(ctx, "/test.v1.Echo/Echo", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", out["request_id"])
	}
}

func TestServer_ErrorMapping(t *testing.T) {
	client := startEcho(t)

	tests := []struct {
		name string
		mode string
		want codes.Code
	}{
		{"panic recovered", "panic", codes.Internal},
		{"foundation error", "missing", codes.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Invoke(context.Background(), "/test.v1.Echo/Echo", map[string]interface{}{"mode": tt.mode})
			if status.Code(err) != tt.want {
				t.Errorf("code = %v, want %v (%v)", status.Code(err), tt.want, err)
			}
		})
	}
}

func TestStructClient_InvalidRequest(t *testing.T) {
	client := NewStructClient(nil, 0)
	_, err := client.Invoke(context.Background(), "/x/y", map[string]interface{}{"bad": make(chan int)})
	if err == nil {
		t.Error("Invoke() with unencodable request should fail")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code mdwerror.Code
		want codes.Code
	}{
		{mdwerror.CodeInvalidInput, codes.InvalidArgument},
		{mdwerror.CodeSyntax, codes.InvalidArgument},
		{mdwerror.CodeNotFound, codes.NotFound},
		{mdwerror.CodeDatabaseError, codes.Unavailable},
		{mdwerror.CodeInvalidAccess, codes.FailedPrecondition},
		{mdwerror.CodeTimeout, codes.DeadlineExceeded},
		{mdwerror.CodeUnknown, codes.Internal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := StatusCode(tt.code); got != tt.want {
				t.Errorf("StatusCode(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestToStatus(t *testing.T) {
	if ToStatus(nil) != nil {
		t.Error("ToStatus(nil) should be nil")
	}

	already := status.Error(codes.Aborted, "aborted")
	if ToStatus(already) != already {
		t.Error("status errors should pass through")
	}

	wrapped := mdwerror.Wrap(mdwerror.New("input too large").WithCode(mdwerror.CodeInvalidInput), "check failed")
	if got := status.Code(ToStatus(wrapped)); got != codes.InvalidArgument {
		t.Errorf("wrapped code = %v, want InvalidArgument", got)
	}

	if got := status.Code(ToStatus(errors.New("plain"))); got != codes.Internal {
		t.Errorf("plain error code = %v, want Internal", got)
	}
}

func TestGetRequestID_FromMetadata(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "abc"))
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("GetRequestID() = %q, want abc", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
