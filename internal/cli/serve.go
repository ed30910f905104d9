package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ardenhollis/structurize/internal/httpapi"
	"github.com/ardenhollis/structurize/pkg/audit"
	"github.com/ardenhollis/structurize/pkg/cache"
	"github.com/ardenhollis/structurize/pkg/config"
)

// serveCommand runs the structurize-as-a-service HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the structurize HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			cacheBackend, err := c.cacheBackend(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cacheBackend.Close()

			auditStore, err := c.auditBackend(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open audit store: %w", err)
			}

			server := httpapi.New(c.Logger, cacheBackend, auditStore)
			c.Logger.Infof("listening on %s", addr)
			return http.ListenAndServe(addr, server.Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&configPath, "config", "", "path to structurize.toml")
	return cmd
}

func (c *CLI) cacheBackend(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisURL})
	case "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	default:
		return cache.NewNullCache(), nil
	}
}

func (c *CLI) auditBackend(ctx context.Context, cfg config.Config) (audit.Store, error) {
	if cfg.Audit.Backend == "mongo" {
		return audit.NewMongoStore(ctx, cfg.Audit.MongoURI, cfg.Audit.Database, cfg.Audit.Collection)
	}
	return audit.NewMemoryStore(), nil
}
