// Package grpc exposes the token authority over gRPC.
package grpc

import (
	"context"
	"net"

	pb "github.com/dmitrijs2005/tokenkeeper/internal/authoritypb"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/services"
	"google.golang.org/grpc"
)

// TokenIssuer is the part of services.TokenService the transport needs.
type TokenIssuer interface {
	Create(ctx context.Context, username string, password []byte) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, userID string) (*services.TokenPair, error)
	Invalidate(ctx context.Context, refreshToken string) error
}

type GRPCServer struct {
	pb.UnimplementedTokenAuthorityServer
	address   string
	tokens    TokenIssuer
	logger    logging.Logger
	jwtSecret []byte
}

var _ pb.TokenAuthorityServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, tokens TokenIssuer, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		tokens:    tokens,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterTokenAuthorityServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
