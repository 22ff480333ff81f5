// zhja-translate serves the Chinese/Japanese translation API: a cached proxy in
// front of an LLM chat-completion backend with daily usage statistics.
//
// Usage: zhja-translate [--config=<file>] [--addr=:8080] [--store=sqlite] [--debug]
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/codyseavey/zhja-translate/internal/api"
	"github.com/codyseavey/zhja-translate/internal/config"
	"github.com/codyseavey/zhja-translate/internal/database"
	"github.com/codyseavey/zhja-translate/internal/logging"
	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/services"
	"github.com/codyseavey/zhja-translate/internal/store"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "zhja-translate",
		Short:        "Chinese/Japanese translation API with caching and usage statistics",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./zhja-translate.yaml)")
	flags.String("addr", ":8080", "listen address")
	flags.String("store", config.BackendSQLite, "store backend: memory, sqlite or redis")
	flags.String("provider", services.ProviderDeepSeek, "translation provider: deepseek, openai, gemini or static")
	flags.Bool("debug", false, "enable debug logging")

	_ = v.BindPFlag("server.addr", flags.Lookup("addr"))
	_ = v.BindPFlag("store.backend", flags.Lookup("store"))
	_ = v.BindPFlag("gateway.provider", flags.Lookup("provider"))
	_ = v.BindPFlag("log.debug", flags.Lookup("debug"))

	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	restore := logging.Install(logger)
	defer restore()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			zap.S().Warnw("Failed to close store", "error", err)
		}
	}()

	gateway, err := services.NewGateway(cfg.GatewaySettings())
	if err != nil {
		return err
	}

	cache := services.NewTranslationCacheService(kv)
	stats := services.NewStatsService(kv)
	translator := services.NewTranslator(cache, stats, gateway, cfg.Translate.MaxLength)

	if cfg.Server.MetricsInterval > 0 {
		go metrics.RunCollector(ctx, cfg.Server.MetricsInterval, stats, cache)
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := api.NewRouter(api.Dependencies{
		Translator: translator,
		Cache:      cache,
		Stats:      stats,
		Version:    version,
		StoreName:  cfg.Store.Backend,
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("Server starting", "addr", cfg.Server.Addr, "store", cfg.Store.Backend, "provider", gateway.Name(), "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.S().Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	zap.S().Info("Server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		zap.S().Warn("Using in-memory store: cache and statistics are lost on restart")
		return store.NewMemoryStore(), nil
	case config.BackendRedis:
		rs, err := store.NewRedisStore(ctx, store.RedisConfig{
			Address:   cfg.Store.RedisAddr,
			Password:  cfg.Store.RedisPassword,
			Database:  cfg.Store.RedisDB,
			TTL:       cfg.Store.CacheTTL,
			TTLPrefix: services.CacheKeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		if dir := filepath.Dir(cfg.Store.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err := database.Open(cfg.Store.SQLitePath, cfg.Log.Debug)
		if err != nil {
			return nil, err
		}
		return store.NewSQLiteStore(db), nil
	}
}
