package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/server"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// defaultServeCacheEntries bounds the in-process cache used when no Redis
// address is given.
const defaultServeCacheEntries = 1024

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	mongoURI      string
	mongoDB       string
	storeDir      string
	memoryStore   bool
	noCache       bool
	retention     time.Duration
	timeout       time.Duration
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      server.DefaultAddr,
		mongoDB:   appName,
		retention: store.DefaultRetention,
		timeout:   server.DefaultRequestTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word cloud HTTP API",
		Long: `Serve the word cloud HTTP API.

Layouts and artifacts are cached in Redis when --redis-addr is set and in
process memory otherwise. Layouts created through the API are stored in
MongoDB when --mongo-uri is set, in memory with --memory-store, and as JSON
files under the local data directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the shared cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for the layout store")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory of the file layout store (default: XDG data dir)")
	cmd.Flags().BoolVar(&opts.memoryStore, "memory-store", false, "keep layouts in memory only")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.retention, "retention", opts.retention, "delete stored layouts older than this (0 keeps them)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")

	return cmd
}

// runServe wires cache, store and hooks, then serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	cch, keyer, err := newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cch, keyer, c.Logger)

	st, err := newServeStore(ctx, opts)
	if err != nil {
		runner.Close()
		return err
	}

	srv := server.New(runner, st,
		server.WithLogger(c.Logger),
		server.WithTimeout(opts.timeout),
		server.WithRetention(opts.retention),
	)
	defer srv.Close()

	printSuccess("Serving %s %s", appName, buildinfo.Version)
	printKeyValue("Address", opts.addr)
	printKeyValue("Cache", describeCache(opts))
	printKeyValue("Store", describeStore(opts))
	printNewline()

	return srv.ListenAndServe(ctx, opts.addr)
}

// newServeCache picks Redis, an in-process cache, or no cache at all.
// Redis keys are scoped by version so releases never read stale entries.
func newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil, nil
	case opts.redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, opts.redisAddr, opts.redisPassword, opts.redisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis %s: %w", opts.redisAddr, err)
		}
		keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"+buildinfo.Version+":")
		return rc, keyer, nil
	default:
		return cache.NewMemoryCache(defaultServeCacheEntries), nil, nil
	}
}

// newServeStore picks MongoDB, memory, or the file store.
func newServeStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		st, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return st, nil
	case opts.memoryStore:
		return store.NewMemoryStore(), nil
	default:
		st, err := store.NewFileStore(opts.storeDir)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
}

func describeCache(opts serveOpts) string {
	switch {
	case opts.noCache:
		return "disabled"
	case opts.redisAddr != "":
		return "redis " + opts.redisAddr
	default:
		return "memory"
	}
}

func describeStore(opts serveOpts) string {
	switch {
	case opts.mongoURI != "":
		return "mongo " + opts.mongoDB
	case opts.memoryStore:
		return "memory"
	case opts.storeDir != "":
		return "files " + opts.storeDir
	default:
		return "files"
	}
}
