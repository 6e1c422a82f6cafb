// Package wire defines the tgclone.v1.DirectoryService gRPC contract.
// Requests and responses travel as google.protobuf.Struct messages, so no
// generated code is needed on either side.
package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "tgclone.v1.DirectoryService"

// Full method names, as seen by interceptors.
const (
	RegisterMethod = "/" + ServiceName + "/Register"
	SearchMethod   = "/" + ServiceName + "/Search"
	CommitMethod   = "/" + ServiceName + "/Commit"
)

// DirectoryServer is the server API for DirectoryService.
type DirectoryServer interface {
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Search(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Commit(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(DirectoryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DirectoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DirectoryServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DirectoryServiceDesc describes DirectoryService for grpc.Server.
var DirectoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(RegisterMethod, DirectoryServer.Register)},
		{MethodName: "Search", Handler: unaryHandler(SearchMethod, DirectoryServer.Search)},
		{MethodName: "Commit", Handler: unaryHandler(CommitMethod, DirectoryServer.Commit)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tgclone/v1/directory",
}

// RegisterDirectoryServer registers srv on s.
func RegisterDirectoryServer(s grpc.ServiceRegistrar, srv DirectoryServer) {
	s.RegisterService(&DirectoryServiceDesc, srv)
}

// DirectoryClient is the client API for DirectoryService.
type DirectoryClient struct {
	cc grpc.ClientConnInterface
}

// NewDirectoryClient wraps cc.
func NewDirectoryClient(cc grpc.ClientConnInterface) *DirectoryClient {
	return &DirectoryClient{cc: cc}
}

func (c *DirectoryClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DirectoryClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RegisterMethod, in, opts)
}

func (c *DirectoryClient) Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SearchMethod, in, opts)
}

func (c *DirectoryClient) Commit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CommitMethod, in, opts)
}
