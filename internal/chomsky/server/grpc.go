package server

import (
	"context"

	"github.com/msto63/minilang/internal/chomsky/service"
	coreGrpc "github.com/msto63/minilang/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Analyzer service and method names. Requests and responses are
// google.protobuf.Struct values, so no generated code is needed.
const (
	AnalyzerServiceName = "minilang.v1.Analyzer"
	MethodCheck         = "/" + AnalyzerServiceName + "/Check"
	MethodHistory       = "/" + AnalyzerServiceName + "/History"
	MethodGetRun        = "/" + AnalyzerServiceName + "/GetRun"
)

// AnalyzerServer is implemented by Server
type AnalyzerServer interface {
	Check(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetRun(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var _ AnalyzerServer = (*Server)(nil)

// AnalyzerServiceDesc describes minilang.v1.Analyzer
var AnalyzerServiceDesc = grpc.ServiceDesc{
	ServiceName: AnalyzerServiceName,
	HandlerType: (*AnalyzerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Check", Handler: unaryHandler(MethodCheck, AnalyzerServer.Check)},
		{MethodName: "History", Handler: unaryHandler(MethodHistory, AnalyzerServer.History)},
		{MethodName: "GetRun", Handler: unaryHandler(MethodGetRun, AnalyzerServer.GetRun)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "minilang/v1/analyzer.proto",
}

// RegisterAnalyzerServer registers srv on a gRPC server
func RegisterAnalyzerServer(s grpc.ServiceRegistrar, srv AnalyzerServer) {
	s.RegisterService(&AnalyzerServiceDesc, srv)
}

type unaryMethod func(AnalyzerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AnalyzerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AnalyzerServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Check implements minilang.v1.Analyzer/Check.
// Request fields: name, source, include_tree.
func (s *Server) Check(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if _, ok := req.GetFields()["source"]; !ok {
		return nil, status.Error(codes.InvalidArgument, "source is required")
	}

	resp, err := s.service.Check(ctx, &service.CheckRequest{
		Name:        stringField(req, "name"),
		Source:      stringField(req, "source"),
		IncludeTree: boolField(req, "include_tree"),
	})
	if err != nil {
		s.logger.Warn("Check failed", "error", err)
		return nil, coreGrpc.ToStatus(err)
	}
	return reply(resp)
}

// History implements minilang.v1.Analyzer/History.
// Request fields: limit.
func (s *Server) History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	runs, err := s.service.History(ctx, int(numberField(req, "limit")))
	if err != nil {
		s.logger.Warn("History failed", "error", err)
		return nil, coreGrpc.ToStatus(err)
	}
	return reply(map[string]interface{}{"runs": runs})
}

// GetRun implements minilang.v1.Analyzer/GetRun.
// Request fields: id.
func (s *Server) GetRun(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, "id")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	run, err := s.service.GetRun(ctx, id)
	if err != nil {
		return nil, coreGrpc.ToStatus(err)
	}
	return reply(run)
}

// reply encodes a response; encoding failures carry a gRPC status like
// service errors do
func reply(v interface{}) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, coreGrpc.ToStatus(err)
	}
	return out, nil
}
