package possession

import (
	"context"
	"errors"

	"github.com/louisbranch/possession/internal/services/possession/storage"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a remote possession service.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps conn.
func NewClient(conn grpc.ClientConnInterface) (*Client, error) {
	if conn == nil {
		return nil, errors.New("gRPC connection is required")
	}
	return &Client{conn: conn}, nil
}

// RefreshDecision asks the service to pull the next AI decision.
func (c *Client) RefreshDecision(ctx context.Context, opts ...grpc.CallOption) error {
	return c.conn.Invoke(ctx, RefreshDecisionFullMethodName, &emptypb.Empty{}, &emptypb.Empty{}, opts...)
}

// PerformAction asks the service to perform the gated action.
func (c *Client) PerformAction(ctx context.Context, opts ...grpc.CallOption) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.conn.Invoke(ctx, PerformActionFullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

// GetState returns the coordinator state name.
func (c *Client) GetState(ctx context.Context, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, GetStateFullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// ListTicks returns up to limit newest-first tick journal entries.
func (c *Client) ListTicks(ctx context.Context, limit int32, opts ...grpc.CallOption) ([]storage.TickRecord, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, ListTicksFullMethodName, wrapperspb.Int32(limit), out, opts...); err != nil {
		return nil, err
	}
	return ticksFromList(out)
}
