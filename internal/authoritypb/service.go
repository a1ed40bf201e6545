// Package authoritypb holds the Go bindings of authority.proto, the
// TokenAuthority gRPC service shared by the client transport and the
// development authority server.
//
// Every message is a google.protobuf.Struct, so the bindings only consist of
// the service stubs below; messages.go converts the structs to and from typed
// Go values.
package authoritypb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "tokenkeeper.authority.TokenAuthority"

const (
	CreateTokensFullMethodName     = "/" + ServiceName + "/CreateTokens"
	RefreshTokensFullMethodName    = "/" + ServiceName + "/RefreshTokens"
	InvalidateTokensFullMethodName = "/" + ServiceName + "/InvalidateTokens"
)

// TokenAuthorityClient is the client API for the TokenAuthority service.
type TokenAuthorityClient interface {
	CreateTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RefreshTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	InvalidateTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type tokenAuthorityClient struct {
	cc grpc.ClientConnInterface
}

func NewTokenAuthorityClient(cc grpc.ClientConnInterface) TokenAuthorityClient {
	return &tokenAuthorityClient{cc: cc}
}

func (c *tokenAuthorityClient) CreateTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CreateTokensFullMethodName, in, opts...)
}

func (c *tokenAuthorityClient) RefreshTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RefreshTokensFullMethodName, in, opts...)
}

func (c *tokenAuthorityClient) InvalidateTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, InvalidateTokensFullMethodName, in, opts...)
}

func (c *tokenAuthorityClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// TokenAuthorityServer is the server API for the TokenAuthority service.
type TokenAuthorityServer interface {
	CreateTokens(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshTokens(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InvalidateTokens(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedTokenAuthorityServer can be embedded by servers that only
// implement part of the service.
type UnimplementedTokenAuthorityServer struct{}

func (UnimplementedTokenAuthorityServer) CreateTokens(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateTokens not implemented")
}
func (UnimplementedTokenAuthorityServer) RefreshTokens(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshTokens not implemented")
}
func (UnimplementedTokenAuthorityServer) InvalidateTokens(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method InvalidateTokens not implemented")
}

func RegisterTokenAuthorityServer(s grpc.ServiceRegistrar, srv TokenAuthorityServer) {
	s.RegisterService(&TokenAuthorityServiceDesc, srv)
}

type serverCall func(srv TokenAuthorityServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call serverCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TokenAuthorityServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TokenAuthorityServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TokenAuthorityServiceDesc is the grpc.ServiceDesc for the TokenAuthority service.
var TokenAuthorityServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TokenAuthorityServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateTokens",
			Handler: unaryHandler(CreateTokensFullMethodName, func(srv TokenAuthorityServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.CreateTokens(ctx, in)
			}),
		},
		{
			MethodName: "RefreshTokens",
			Handler: unaryHandler(RefreshTokensFullMethodName, func(srv TokenAuthorityServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.RefreshTokens(ctx, in)
			}),
		},
		{
			MethodName: "InvalidateTokens",
			Handler: unaryHandler(InvalidateTokensFullMethodName, func(srv TokenAuthorityServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.InvalidateTokens(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authority.proto",
}
