package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relpanel/internal/server"
	"github.com/matzehuels/relpanel/pkg/cache"
	"github.com/matzehuels/relpanel/pkg/observability"
	"github.com/matzehuels/relpanel/pkg/pipeline"
	"github.com/matzehuels/relpanel/pkg/storage"
)

// serveFlags holds the command-line flags for the serve command.
type serveFlags struct {
	addr     string
	redis    string
	mongo    string
	database string
	noCache  bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Endpoints:
  GET    /healthz
  POST   /v1/layout            solve a scene (JSON body)
  POST   /v1/render?format=svg render a scene
  POST   /v1/layouts           solve and save a scene
  GET    /v1/layouts           list saved layouts
  GET    /v1/layouts/{id}      fetch a saved layout
  DELETE /v1/layouts/{id}      delete a saved layout

Layouts are cached in Redis with --redis, otherwise on disk. Saved layouts
go to MongoDB with --mongo, otherwise they live in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.serveDefaults(cmd, &flags)
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&flags.redis, "redis", "", "Redis address for the layout cache")
	cmd.Flags().StringVar(&flags.mongo, "mongo", "", "MongoDB URI for saved layouts")
	cmd.Flags().StringVar(&flags.database, "database", storage.DefaultDatabase, "MongoDB database")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// serveDefaults fills flags not given on the command line from the config.
func (c *CLI) serveDefaults(cmd *cobra.Command, f *serveFlags) {
	if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
		f.addr = c.Config.Server.Addr
	}
	if !cmd.Flags().Changed("redis") {
		f.redis = c.Config.Cache.RedisAddr
	}
	if !cmd.Flags().Changed("mongo") {
		f.mongo = c.Config.Storage.MongoURI
	}
	if !cmd.Flags().Changed("database") && c.Config.Storage.Database != "" {
		f.database = c.Config.Storage.Database
	}
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	cc, err := c.serveCache(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(cc, c.newKeyer(), c.Logger)
	defer runner.Close()

	store, err := c.serveStore(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			c.Logger.Warn("close storage", "err", err)
		}
	}()

	observability.NewLogHooks(c.Logger).Install()

	srv := server.New(runner, store, server.WithLogger(c.Logger))
	err = srv.ListenAndServe(ctx, flags.addr)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *CLI) serveCache(ctx context.Context, flags serveFlags) (cache.Cache, error) {
	if flags.redis != "" && !flags.noCache {
		c.Logger.Info("using redis cache", "addr", flags.redis)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: flags.redis, Prefix: appName + ":"})
	}
	return c.newCache(ctx, flags.noCache)
}

func (c *CLI) serveStore(ctx context.Context, flags serveFlags) (storage.Store, error) {
	if flags.mongo == "" {
		c.Logger.Info("using in-memory storage")
		return storage.NewMemoryStore(), nil
	}
	c.Logger.Info("using mongo storage", "database", flags.database)
	return storage.NewMongoStore(ctx, storage.MongoConfig{URI: flags.mongo, Database: flags.database})
}
