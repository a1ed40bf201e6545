package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the token authority
//	-t int      request timeout in seconds
//	-b string   cache backend: sqlite, redis or memory
//	-d string   SQLite database file
//	-r string   Redis address
//	-x          derive token expiry from the access token
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-b", "-d", "-r", "-x"}, "-x")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access the token authority")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.CacheBackend, "b", cfg.CacheBackend, "cache backend: sqlite, redis or memory")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "SQLite database file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.BoolVar(&cfg.DeriveExpiry, "x", cfg.DeriveExpiry, "derive expiry from the access token exp claim")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t has whole-second resolution, so it only replaces a JSON or default
	// timeout when passed explicitly.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
