package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dormirlahaut/internal/config"
	"dormirlahaut/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig   func() config.Config
	connectRedis func(config.Config) *redis.Client
	newLogger    func() (*zap.Logger, error)
	notify       func(chan<- os.Signal, ...os.Signal)
	run          func(context.Context, config.Config, *redis.Client, *zap.Logger, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:   config.Load,
		connectRedis: connectRedis,
		newLogger:    func() (*zap.Logger, error) { return zap.NewProduction() },
		notify:       signal.Notify,
		run:          Run,
	}
}

func connectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	logger, err := deps.newLogger()
	if err != nil {
		log.Printf("logger init failed: %v", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	rdb := deps.connectRedis(cfg)

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, rdb, logger, signals, nil); err != nil {
		logger.Error("server exited with error", zap.Error(err))
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, rdb *redis.Client, logger *zap.Logger, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, rdb, logger)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.App.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
