package grpc

import (
	"context"
	"errors"

	pb "github.com/dmitrijs2005/tokenkeeper/internal/authoritypb"
	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) CreateTokens(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	creds, err := pb.CredentialsFromStruct(req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	defer common.WipeByteArray(creds.Password)

	pair, err := s.tokens.Create(ctx, creds.Username, creds.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Tokens issued", "username", creds.Username)
	return fromPair(pair), nil
}

func (s *GRPCServer) RefreshTokens(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	current, err := pb.TokensFromStruct(req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	pair, err := s.tokens.Refresh(ctx, current.RefreshToken, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return fromPair(pair), nil
}

func (s *GRPCServer) InvalidateTokens(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	current, err := pb.TokensFromStruct(req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.tokens.Invalidate(ctx, current.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return pb.Tokens{}.ToStruct(), nil
}

func fromPair(p *services.TokenPair) *structpb.Struct {
	expiresAt := p.ExpiresAt
	return pb.Tokens{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    &expiresAt,
	}.ToStruct()
}

func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, pb.ErrMalformedMessage):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
