package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-storefront/config"
	"github.com/goliatone/go-storefront/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/techmaster-vietnam/goerrorkit"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	goerrorkit.InitLogger(goerrorkit.LoggerOptions{
		ConsoleOutput: true,
		FileOutput:    false,
		JSONFormat:    cfg.Log.Format == "json",
		LogLevel:      cfg.Log.Level,
	})
	goerrorkit.ConfigureForApplication("main")

	logger := newLogger(cfg.Log)

	// cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg, di.WithLogger(logger), di.WithVersion(version))
	if err != nil {
		logger.WithError(err).Fatal("failed to start")
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.WithError(err).Error("close resources")
		}
	}()

	app := container.App()
	listenErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"port":     cfg.Server.Port,
			"database": cfg.Database.Driver,
			"cache":    cfg.Cache.Driver,
			"version":  version,
		}).Info("storefront listening")
		listenErr <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			logger.WithError(err).Error("server stopped")
		}
		return
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithField("level", cfg.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
