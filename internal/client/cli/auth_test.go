package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/client/authcache"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/client"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/services"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	lastCreds     models.Credentials
	lastNotBefore string
	res           *services.Result
	err           error
}

func (f *fakeManager) CreateTokens(_ context.Context, creds models.Credentials) (*services.Result, error) {
	f.lastCreds = models.Credentials{Username: creds.Username, Password: append([]byte(nil), creds.Password...)}
	return f.res, f.err
}

func (f *fakeManager) RefreshTokens(_ context.Context, notBefore string) (*services.Result, error) {
	f.lastNotBefore = notBefore
	return f.res, f.err
}

func (f *fakeManager) InvalidateTokens(context.Context) (*services.Result, error) {
	return f.res, f.err
}

func newTestApp(t *testing.T, m services.TokenLifecycleManager) (*App, services.SharedCache) {
	t.Helper()
	cache := authcache.New(metadata.NewMemoryRepository())
	return &App{
		log:     logging.NewNopLogger(),
		manager: m,
		cache:   cache,
		reader:  rdr("alice\n"),
		out:     &bytes.Buffer{},
	}, cache
}

func stubPassword(t *testing.T, pw []byte) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestLogin_PassesCredentialsAndWipesPassword(t *testing.T) {
	lines := capturePrintln(t)
	pw := []byte("secret")
	stubPassword(t, pw)

	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fm := &fakeManager{res: &services.Result{Op: services.OpCreateTokens, Auth: models.AuthState{AccessToken: "a1", ExpiresAt: &exp}}}
	a, _ := newTestApp(t, fm)

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "alice", fm.lastCreds.Username)
	assert.Equal(t, []byte("secret"), fm.lastCreds.Password)
	assert.Equal(t, make([]byte, len(pw)), pw)
	assert.Equal(t, []string{"CreateTokensMutation: status=authenticated expires=2025-01-01 00:00:00 UTC"}, *lines)
}

func TestLogin_Unauthorized(t *testing.T) {
	lines := capturePrintln(t)
	stubPassword(t, []byte("bad"))

	fm := &fakeManager{err: &services.OpError{Op: services.OpCreateTokens, Err: client.ErrUnauthorized}}
	a, _ := newTestApp(t, fm)

	err := a.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, []string{"Not authorized, please log in again."}, *lines)
}

func TestRefresh_ReportsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unavailable", client.ErrUnavailable, "Token authority unavailable, try again later."},
		{"validation", services.ErrInvalidNotBefore, "Invalid input: validation error: notBefore is not a valid timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := capturePrintln(t)
			fm := &fakeManager{err: tt.err}
			a, _ := newTestApp(t, fm)

			require.ErrorIs(t, a.Refresh(context.Background(), "x"), tt.err)
			assert.Equal(t, "x", fm.lastNotBefore)
			assert.Equal(t, []string{tt.want}, *lines)
		})
	}
}

func TestLogout(t *testing.T) {
	lines := capturePrintln(t)
	fm := &fakeManager{res: &services.Result{Op: services.OpInvalidateTokens}}
	a, _ := newTestApp(t, fm)

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, []string{"InvalidateTokensMutation: status=anonymous expires=unknown"}, *lines)
}

func TestStatusAndPrompt(t *testing.T) {
	lines := capturePrintln(t)
	a, cache := newTestApp(t, &fakeManager{})
	ctx := context.Background()

	assert.Equal(t, "(anonymous)", a.getStatus())
	assert.False(t, a.isLoggedIn())

	require.NoError(t, cache.Write(ctx, models.AuthState{AccessToken: "a1", RefreshToken: "r1"}))
	assert.Equal(t, "(authenticated)", a.getStatus())
	assert.True(t, a.isLoggedIn())

	require.NoError(t, cache.Write(ctx, models.AuthState{Invalid: true, RefreshToken: "r1"}))
	assert.Equal(t, "(invalid)", a.getStatus())
	assert.False(t, a.isLoggedIn())

	require.NoError(t, a.Status(ctx))
	assert.Equal(t, []string{"status=invalid expires=unknown"}, *lines)
}
