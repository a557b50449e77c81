package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"trends-go/internal/config"
	"trends-go/internal/handler"
	"trends-go/internal/service"
	"trends-go/pkg/cache"
	"trends-go/pkg/logger"
	"trends-go/pkg/trends"
)

func main() {
	var (
		configPath = flag.String("config", "config/dev.yaml", "Configuration file path")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := run(*configPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, debug bool) error {
	cfg, err := config.NewManager().Load(configPath)
	if err != nil {
		return err
	}

	logCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	if debug {
		logCfg.Level = "debug"
	}
	logger.SetLogger(logger.New(logCfg))
	log := logger.GetLogger().WithField("component", "server")

	client, err := trends.NewHTTPClient(trends.ClientConfig{
		Endpoint:   cfg.Trends.Endpoint,
		APIKey:     cfg.Trends.APIKey,
		HL:         cfg.Trends.HL,
		TZ:         cfg.Trends.TZ,
		Timeout:    time.Duration(cfg.Trends.TimeoutSec) * time.Second,
		MaxRetries: cfg.Trends.MaxRetries,
		RetryDelay: time.Duration(cfg.Trends.RetryDelayMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	seriesCache := cache.NewSeriesCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
	svc := service.NewSeriesService(trends.NewFetcher(client), seriesCache)

	app := fiber.New(fiber.Config{
		AppName:               "trends-go",
		DisableStartupMessage: true,
	})
	stats, _ := client.(trends.StatsProvider)
	handler.NewSeriesHandler(svc, stats).Register(app)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Server listening")
		errCh <- app.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
