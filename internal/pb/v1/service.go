package alarmv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

//nolint:revive,stylecheck // Names follow the protoc-gen-go-grpc layout.
const (
	AlarmService_ServiceName = "alarmclock.v1.AlarmService"

	AlarmService_ListAlarms_FullMethodName       = "/alarmclock.v1.AlarmService/ListAlarms"
	AlarmService_CreateAlarm_FullMethodName      = "/alarmclock.v1.AlarmService/CreateAlarm"
	AlarmService_ToggleAlarm_FullMethodName      = "/alarmclock.v1.AlarmService/ToggleAlarm"
	AlarmService_DeleteAlarm_FullMethodName      = "/alarmclock.v1.AlarmService/DeleteAlarm"
	AlarmService_StopRinging_FullMethodName      = "/alarmclock.v1.AlarmService/StopRinging"
	AlarmService_GetRingingStatus_FullMethodName = "/alarmclock.v1.AlarmService/GetRingingStatus"
)

// AlarmServiceClient is the client API for AlarmService.
type AlarmServiceClient interface {
	ListAlarms(ctx context.Context, in *ListAlarmsRequest, opts ...grpc.CallOption) (*ListAlarmsResponse, error)
	CreateAlarm(ctx context.Context, in *CreateAlarmRequest, opts ...grpc.CallOption) (*CreateAlarmResponse, error)
	ToggleAlarm(ctx context.Context, in *ToggleAlarmRequest, opts ...grpc.CallOption) (*ToggleAlarmResponse, error)
	DeleteAlarm(ctx context.Context, in *DeleteAlarmRequest, opts ...grpc.CallOption) (*DeleteAlarmResponse, error)
	StopRinging(ctx context.Context, in *StopRingingRequest, opts ...grpc.CallOption) (*StopRingingResponse, error)
	GetRingingStatus(
		ctx context.Context,
		in *GetRingingStatusRequest,
		opts ...grpc.CallOption,
	) (*RingingStatusResponse, error)
}

type alarmServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAlarmServiceClient creates a client stub over cc.
func NewAlarmServiceClient(cc grpc.ClientConnInterface) AlarmServiceClient {
	return &alarmServiceClient{cc: cc}
}

func (c *alarmServiceClient) ListAlarms(
	ctx context.Context,
	in *ListAlarmsRequest,
	opts ...grpc.CallOption,
) (*ListAlarmsResponse, error) {
	out := new(ListAlarmsResponse)

	return out, c.invoke(ctx, AlarmService_ListAlarms_FullMethodName, in, out, opts)
}

func (c *alarmServiceClient) CreateAlarm(
	ctx context.Context,
	in *CreateAlarmRequest,
	opts ...grpc.CallOption,
) (*CreateAlarmResponse, error) {
	out := new(CreateAlarmResponse)

	return out, c.invoke(ctx, AlarmService_CreateAlarm_FullMethodName, in, out, opts)
}

func (c *alarmServiceClient) ToggleAlarm(
	ctx context.Context,
	in *ToggleAlarmRequest,
	opts ...grpc.CallOption,
) (*ToggleAlarmResponse, error) {
	out := new(ToggleAlarmResponse)

	return out, c.invoke(ctx, AlarmService_ToggleAlarm_FullMethodName, in, out, opts)
}

func (c *alarmServiceClient) DeleteAlarm(
	ctx context.Context,
	in *DeleteAlarmRequest,
	opts ...grpc.CallOption,
) (*DeleteAlarmResponse, error) {
	out := new(DeleteAlarmResponse)

	return out, c.invoke(ctx, AlarmService_DeleteAlarm_FullMethodName, in, out, opts)
}

func (c *alarmServiceClient) StopRinging(
	ctx context.Context,
	in *StopRingingRequest,
	opts ...grpc.CallOption,
) (*StopRingingResponse, error) {
	out := new(StopRingingResponse)

	return out, c.invoke(ctx, AlarmService_StopRinging_FullMethodName, in, out, opts)
}

func (c *alarmServiceClient) GetRingingStatus(
	ctx context.Context,
	in *GetRingingStatusRequest,
	opts ...grpc.CallOption,
) (*RingingStatusResponse, error) {
	out := new(RingingStatusResponse)

	return out, c.invoke(ctx, AlarmService_GetRingingStatus_FullMethodName, in, out, opts)
}

// invoke performs a unary call with the JSON codec selected.
func (c *alarmServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)

	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

// AlarmServiceServer is the server API for AlarmService.
// Implementations must embed UnimplementedAlarmServiceServer.
type AlarmServiceServer interface {
	ListAlarms(ctx context.Context, in *ListAlarmsRequest) (*ListAlarmsResponse, error)
	CreateAlarm(ctx context.Context, in *CreateAlarmRequest) (*CreateAlarmResponse, error)
	ToggleAlarm(ctx context.Context, in *ToggleAlarmRequest) (*ToggleAlarmResponse, error)
	DeleteAlarm(ctx context.Context, in *DeleteAlarmRequest) (*DeleteAlarmResponse, error)
	StopRinging(ctx context.Context, in *StopRingingRequest) (*StopRingingResponse, error)
	GetRingingStatus(ctx context.Context, in *GetRingingStatusRequest) (*RingingStatusResponse, error)
	mustEmbedUnimplementedAlarmServiceServer()
}

// UnimplementedAlarmServiceServer answers every method with codes.Unimplemented.
type UnimplementedAlarmServiceServer struct{}

func (UnimplementedAlarmServiceServer) ListAlarms(context.Context, *ListAlarmsRequest) (*ListAlarmsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAlarms not implemented")
}

func (UnimplementedAlarmServiceServer) CreateAlarm(
	context.Context,
	*CreateAlarmRequest,
) (*CreateAlarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAlarm not implemented")
}

func (UnimplementedAlarmServiceServer) ToggleAlarm(
	context.Context,
	*ToggleAlarmRequest,
) (*ToggleAlarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ToggleAlarm not implemented")
}

func (UnimplementedAlarmServiceServer) DeleteAlarm(
	context.Context,
	*DeleteAlarmRequest,
) (*DeleteAlarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAlarm not implemented")
}

func (UnimplementedAlarmServiceServer) StopRinging(
	context.Context,
	*StopRingingRequest,
) (*StopRingingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StopRinging not implemented")
}

func (UnimplementedAlarmServiceServer) GetRingingStatus(
	context.Context,
	*GetRingingStatusRequest,
) (*RingingStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRingingStatus not implemented")
}

func (UnimplementedAlarmServiceServer) mustEmbedUnimplementedAlarmServiceServer() {}

// RegisterAlarmServiceServer registers srv on s.
func RegisterAlarmServiceServer(s grpc.ServiceRegistrar, srv AlarmServiceServer) {
	s.RegisterService(&AlarmService_ServiceDesc, srv)
}

// AlarmService_ServiceDesc describes AlarmService for grpc.RegisterService.
//
//nolint:revive,stylecheck,gochecknoglobals // Descriptor follows the protoc-gen-go-grpc layout.
var AlarmService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AlarmService_ServiceName,
	HandlerType: (*AlarmServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListAlarms",
			Handler:    unaryHandler(AlarmService_ListAlarms_FullMethodName, AlarmServiceServer.ListAlarms),
		},
		{
			MethodName: "CreateAlarm",
			Handler:    unaryHandler(AlarmService_CreateAlarm_FullMethodName, AlarmServiceServer.CreateAlarm),
		},
		{
			MethodName: "ToggleAlarm",
			Handler:    unaryHandler(AlarmService_ToggleAlarm_FullMethodName, AlarmServiceServer.ToggleAlarm),
		},
		{
			MethodName: "DeleteAlarm",
			Handler:    unaryHandler(AlarmService_DeleteAlarm_FullMethodName, AlarmServiceServer.DeleteAlarm),
		},
		{
			MethodName: "StopRinging",
			Handler:    unaryHandler(AlarmService_StopRinging_FullMethodName, AlarmServiceServer.StopRinging),
		},
		{
			MethodName: "GetRingingStatus",
			Handler: unaryHandler(
				AlarmService_GetRingingStatus_FullMethodName,
				AlarmServiceServer.GetRingingStatus,
			),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alarmclock/v1/alarm.proto",
}

// unaryHandler adapts a typed server method to a grpc.MethodHandler.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(AlarmServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		server, ok := srv.(AlarmServiceServer)
		if !ok {
			return nil, status.Errorf(codes.Internal, "unexpected server type %T", srv)
		}

		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, status.Errorf(codes.Internal, "unexpected request type %T", req)
			}

			return call(server, ctx, typed)
		}

		return interceptor(ctx, in, info, handler)
	}
}
