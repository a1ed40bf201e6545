package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", logging.NewNopLogger(), &fakeIssuer{}, secret)
}

var refreshInfo = &grpc.UnaryServerInfo{FullMethod: "/tokenkeeper.authority.TokenAuthority/RefreshTokens"}

func withToken(tok string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, tok))
}

func TestInterceptor_NoToken_PassesThrough(t *testing.T) {
	s := newTestServer("secret")

	called := false
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		if id := userIDFromContext(ctx); id != "" {
			t.Fatalf("unexpected userID %q", id)
		}
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, refreshInfo, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || resp != "ok" {
		t.Fatalf("handler not called or wrong resp: %v", resp)
	}
}

func TestInterceptor_ValidToken_SetsUserID(t *testing.T) {
	s := newTestServer("secret")

	tok, _, err := auth.GenerateToken("user-42", []byte("secret"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = userIDFromContext(ctx)
		return nil, nil
	}

	if _, err := s.accessTokenInterceptor(withToken(tok), nil, refreshInfo, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "user-42" {
		t.Fatalf("userID = %q, want user-42", got)
	}
}

func TestInterceptor_ExpiredToken_PassesWithoutUser(t *testing.T) {
	s := newTestServer("secret")

	tok, _, _ := auth.GenerateToken("user-42", []byte("secret"), -time.Minute)

	called := false
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		if id := userIDFromContext(ctx); id != "" {
			t.Fatalf("expired token must not set userID, got %q", id)
		}
		return nil, nil
	}

	if _, err := s.accessTokenInterceptor(withToken(tok), nil, refreshInfo, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler was not called")
	}
}

func TestInterceptor_BadSignature_Unauthenticated(t *testing.T) {
	s := newTestServer("secret")

	tok, _, _ := auth.GenerateToken("user-42", []byte("other"), time.Minute)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for a forged token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withToken(tok), nil, refreshInfo, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestLoggingInterceptor_ReturnsHandlerResult(t *testing.T) {
	s := newTestServer("secret")

	wantErr := status.Error(codes.Internal, "boom")
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "resp", wantErr
	}

	resp, err := s.loggingInterceptor(context.Background(), nil, refreshInfo, h)
	if resp != "resp" || err != wantErr {
		t.Fatalf("got (%v, %v)", resp, err)
	}
}
