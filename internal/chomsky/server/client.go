package server

import (
	"context"
	"time"

	"github.com/msto63/minilang/internal/chomsky/service"
	"github.com/msto63/minilang/internal/chomsky/store"
	coreGrpc "github.com/msto63/minilang/pkg/core/grpc"
	"google.golang.org/grpc"
)

// AnalyzerClient is a typed client for minilang.v1.Analyzer
type AnalyzerClient struct {
	client *coreGrpc.StructClient
}

// NewAnalyzerClient creates a client on an existing connection
func NewAnalyzerClient(conn grpc.ClientConnInterface, timeout time.Duration) *AnalyzerClient {
	return &AnalyzerClient{client: coreGrpc.NewStructClient(conn, timeout)}
}

// Check sends a program for analysis
func (c *AnalyzerClient) Check(ctx context.Context, req *service.CheckRequest) (*service.CheckResponse, error) {
	out, err := c.client.Invoke(ctx, MethodCheck, map[string]interface{}{
		"name":         req.Name,
		"source":       req.Source,
		"include_tree": req.IncludeTree,
	})
	if err != nil {
		return nil, err
	}

	var resp service.CheckResponse
	if err := fromMap(out, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History lists the most recent runs
func (c *AnalyzerClient) History(ctx context.Context, limit int) ([]*store.Run, error) {
	out, err := c.client.Invoke(ctx, MethodHistory, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Runs []*store.Run `json:"runs"`
	}
	if err := fromMap(out, &resp); err != nil {
		return nil, err
	}
	return resp.Runs, nil
}

// GetRun fetches one stored run
func (c *AnalyzerClient) GetRun(ctx context.Context, id string) (*store.Run, error) {
	out, err := c.client.Invoke(ctx, MethodGetRun, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}

	var run store.Run
	if err := fromMap(out, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
