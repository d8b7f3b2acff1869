package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the planner service.
const ServiceName = "planner.v1.PlannerService"

// PlannerServiceServer is the server API for the planner service. Every RPC takes
// and returns a google.protobuf.Struct.
type PlannerServiceServer interface {
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSessions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddContributionRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddWithdrawalRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateContributionRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateWithdrawalRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveRule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRules(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Deposit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Withdraw(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AdvanceOneMonth(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProjectToDate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProjectToAge(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBalances(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAccountHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetYearlyBalances(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(PlannerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PlannerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(PlannerServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// PlannerServiceDesc describes the planner service for grpc.Server.RegisterService.
var PlannerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlannerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateSession", PlannerServiceServer.CreateSession),
		unary("ListSessions", PlannerServiceServer.ListSessions),
		unary("DeleteSession", PlannerServiceServer.DeleteSession),
		unary("GetSummary", PlannerServiceServer.GetSummary),
		unary("AddAccount", PlannerServiceServer.AddAccount),
		unary("RemoveAccount", PlannerServiceServer.RemoveAccount),
		unary("AddContributionRule", PlannerServiceServer.AddContributionRule),
		unary("AddWithdrawalRule", PlannerServiceServer.AddWithdrawalRule),
		unary("UpdateContributionRule", PlannerServiceServer.UpdateContributionRule),
		unary("UpdateWithdrawalRule", PlannerServiceServer.UpdateWithdrawalRule),
		unary("RemoveRule", PlannerServiceServer.RemoveRule),
		unary("ListRules", PlannerServiceServer.ListRules),
		unary("Deposit", PlannerServiceServer.Deposit),
		unary("Withdraw", PlannerServiceServer.Withdraw),
		unary("AdvanceOneMonth", PlannerServiceServer.AdvanceOneMonth),
		unary("ProjectToDate", PlannerServiceServer.ProjectToDate),
		unary("ProjectToAge", PlannerServiceServer.ProjectToAge),
		unary("GetBalances", PlannerServiceServer.GetBalances),
		unary("GetAccountHistory", PlannerServiceServer.GetAccountHistory),
		unary("GetYearlyBalances", PlannerServiceServer.GetYearlyBalances),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterPlannerServiceServer registers srv with s.
func RegisterPlannerServiceServer(s grpc.ServiceRegistrar, srv PlannerServiceServer) {
	s.RegisterService(&PlannerServiceDesc, srv)
}

// Client calls the planner service over any client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new Client instance
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with req converted to a Struct. req values follow the
// structpb.NewStruct rules: strings, numbers, bools, []interface{} and nested maps.
func (c *Client) Call(ctx context.Context, method string, req map[string]interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
