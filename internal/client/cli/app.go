package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tokenkeeper/internal/client/authcache"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/client"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tokenkeeper/internal/client/services"
	"github.com/dmitrijs2005/tokenkeeper/internal/logging"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite"
)

// ErrUnknownBackend is returned by NewApp for an unsupported cache_backend.
var ErrUnknownBackend = errors.New("unknown cache backend")

type App struct {
	config    *config.Config
	log       logging.Logger
	manager   services.TokenLifecycleManager
	cache     services.SharedCache
	authority client.TokenAuthority
	closers   []func() error
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp wires the cache backend, the authority client and the lifecycle
// manager selected by c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	repo, err := a.openRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.cache = authcache.New(repo)

	authority, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create authority client: %w", err)
	}
	a.authority = authority
	a.closers = append(a.closers, authority.Close)

	opts := []services.Option{services.WithLogger(log)}
	if c.DeriveExpiry {
		opts = append(opts, services.WithExpiryFromToken())
	}
	a.manager = services.NewTokenLifecycleManager(authority, a.cache, opts...)

	return a, nil
}

// openRepository returns the metadata backend named by config and registers
// its cleanup in a.closers.
func (a *App) openRepository(ctx context.Context) (metadata.Repository, error) {
	switch a.config.CacheBackend {
	case config.BackendSQLite:
		db, err := client.InitDatabase(ctx, a.config.CacheDSN)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return metadata.NewSQLiteRepository(db), nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: a.config.RedisAddr})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return metadata.NewRedisRepository(rdb, a.config.RedisPrefix), nil

	case config.BackendMemory:
		return metadata.NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, a.config.CacheBackend)
	}
}

// Close releases everything NewApp opened, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}
