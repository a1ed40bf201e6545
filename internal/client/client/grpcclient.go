package client

import (
	"context"
	"fmt"
	"time"

	pb "github.com/dmitrijs2005/tokenkeeper/internal/authoritypb"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.TokenAuthorityClient
}

// NewGRPCClient prepares a client for the authority at endpointURL. The
// connection is established lazily on the first call. A zero timeout leaves
// deadlines to the caller's context.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(opts ...grpc.DialOption) error {
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, dialOpts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewTokenAuthorityClient(conn)
	return nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Create(ctx context.Context, creds models.Credentials) (models.TokenSet, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := pb.Credentials{Username: creds.Username, Password: creds.Password}

	resp, err := s.client.CreateTokens(ctx, req.ToStruct())
	if err != nil {
		return models.TokenSet{}, s.mapError(err)
	}
	return toTokenSet(resp)
}

func (s *GRPCClient) Refresh(ctx context.Context, current models.AuthState) (models.TokenSet, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.RefreshTokens(withAccessToken(ctx, current.AccessToken), fromAuthState(current).ToStruct())
	if err != nil {
		return models.TokenSet{}, s.mapError(err)
	}
	return toTokenSet(resp)
}

func (s *GRPCClient) Invalidate(ctx context.Context, current models.AuthState) (models.TokenSet, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.InvalidateTokens(withAccessToken(ctx, current.AccessToken), fromAuthState(current).ToStruct())
	if err != nil {
		return models.TokenSet{}, s.mapError(err)
	}
	return toTokenSet(resp)
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func fromAuthState(a models.AuthState) pb.Tokens {
	return pb.Tokens{
		Invalid:      a.Invalid,
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		ExpiresAt:    a.ExpiresAt,
	}
}

func toTokenSet(resp *structpb.Struct) (models.TokenSet, error) {
	t, err := pb.TokensFromStruct(resp)
	if err != nil {
		return models.TokenSet{}, fmt.Errorf("decode authority response: %w", err)
	}
	return models.TokenSet{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.ExpiresAt,
	}, nil
}
