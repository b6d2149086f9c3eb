package possession

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "possession.v1.PossessionService"

// Full method names, usable in interceptors.
const (
	RefreshDecisionFullMethodName = "/" + ServiceName + "/RefreshDecision"
	PerformActionFullMethodName   = "/" + ServiceName + "/PerformAction"
	GetStateFullMethodName        = "/" + ServiceName + "/GetState"
	ListTicksFullMethodName       = "/" + ServiceName + "/ListTicks"
)

// PossessionServiceServer is the server API for the possession service.
//
// Messages are protobuf well-known types, so the service needs no generated
// code.
type PossessionServiceServer interface {
	RefreshDecision(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	PerformAction(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	GetState(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	// ListTicks returns newest-first tick journal entries; the request holds
	// the page size and each list element is a tick struct.
	ListTicks(context.Context, *wrapperspb.Int32Value) (*structpb.ListValue, error)
}

// RegisterPossessionServiceServer registers srv with s.
func RegisterPossessionServiceServer(s grpc.ServiceRegistrar, srv PossessionServiceServer) {
	s.RegisterService(&PossessionServiceDesc, srv)
}

// PossessionServiceDesc describes the possession service for grpc.Server.
var PossessionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PossessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RefreshDecision", Handler: refreshDecisionHandler},
		{MethodName: "PerformAction", Handler: performActionHandler},
		{MethodName: "GetState", Handler: getStateHandler},
		{MethodName: "ListTicks", Handler: listTicksHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "possession/v1/possession.proto",
}

func refreshDecisionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PossessionServiceServer).RefreshDecision(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RefreshDecisionFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PossessionServiceServer).RefreshDecision(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func performActionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PossessionServiceServer).PerformAction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PerformActionFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PossessionServiceServer).PerformAction(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getStateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PossessionServiceServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetStateFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PossessionServiceServer).GetState(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func listTicksHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PossessionServiceServer).ListTicks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListTicksFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PossessionServiceServer).ListTicks(ctx, req.(*wrapperspb.Int32Value))
	}
	return interceptor(ctx, in, info, handler)
}
