package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/internal/server"
	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	listen     string // listen address override
	configPath string // config file path
	mongoURI   string // MongoDB URI override
	redisAddr  string // Redis address override
	noCache    bool   // disable caching
}

// serveCommand creates the serve command for running the API server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashgrid API server",
		Long: `Run the dashgrid API server.

The server exposes board CRUD, layout packing, rendering, and the
interactive layout operations over HTTP. Boards live in MongoDB when a
URI is configured, otherwise in memory. Packed layouts are cached in
Redis when an address is configured, otherwise on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for board storage")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for layout caching")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the store, cache, and runner from config plus flag
// overrides, then runs the server until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.listen != "" {
		cfg.Server.Listen = opts.listen
	}
	if opts.mongoURI != "" {
		cfg.Server.MongoURI = opts.mongoURI
	}
	if opts.redisAddr != "" {
		cfg.Cache.Backend = "redis"
		cfg.Cache.RedisAddr = opts.redisAddr
	}
	if opts.noCache {
		cfg.Cache.Backend = "none"
	}

	serverCache, err := c.newServerCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer serverCache.Close()

	store, err := c.newStore(ctx, cfg.Server, serverCache)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer store.Close(context.Background())

	srv := server.New(server.Config{
		Store:   store,
		Runner:  pipeline.NewRunner(serverCache, nil, c.Logger),
		Logger:  c.Logger,
		Columns: cfg.Columns,
	})
	return srv.Run(ctx, cfg.Server.Listen)
}

// newServerCache builds the cache backend named by the config.
func (c *CLI) newServerCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "file", "":
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}

// newStore builds the board store: MongoDB when configured, in-memory
// otherwise. The store is wrapped with a read-through cache.
func (c *CLI) newStore(ctx context.Context, cfg config.ServerConfig, serverCache cache.Cache) (server.BoardStore, error) {
	if cfg.MongoURI == "" {
		c.Logger.Warn("no MongoDB URI configured, using in-memory board store")
		return server.NewMemoryStore(), nil
	}
	mongoStore, err := server.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	return server.NewCachedStore(mongoStore, serverCache, nil), nil
}
