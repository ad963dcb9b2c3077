package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bearinmind/backend/cache"
	"bearinmind/backend/config"
	"bearinmind/backend/filestorage"
	"bearinmind/backend/repositories"
	"bearinmind/backend/routes"
	"bearinmind/backend/services"
	"bearinmind/backend/utils"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logger, err := utils.InitLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "migrate the schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := utils.InitDB(cfg, logger)
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := repositories.Migrate(db); err != nil {
			return err
		}
	}

	translationCache, closeCache, err := newTranslationCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	svc := services.New(
		repositories.NewGormStore(db),
		translationCache,
		filestorage.NewLocalClient(cfg.FileStorageDir, cfg.FileStorageBaseURL),
		cfg,
		services.SystemClock,
		logger,
	)
	app := routes.NewApp(svc, cfg, logger)

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.ServerPort))
		errc <- app.Listen(":" + cfg.ServerPort)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newTranslationCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.TranslationCache, func(), error) {
	if cfg.RedisAddr == "" {
		return cache.Noop{}, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	logger.Info("translation cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.TranslationCacheTTL))
	return cache.NewRedisTranslationCache(rdb, cfg.TranslationCacheTTL), func() { _ = rdb.Close() }, nil
}
