// Command apiserver runs the HTTP perception service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/AtomSense/internal/interfaces/http"
)

const shutdownGrace = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting atomsense api server",
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Engine.Mode),
	)

	if *configPath != "" {
		config.Watch(*configPath, func(*config.Config) {
			log.Info("configuration file changed; restart to apply")
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := buildDependencies(ctx, cfg, log)
	if err != nil {
		log.Error("failed to build dependencies", logging.Err(err))
		os.Exit(1)
	}
	defer deps.Close(context.Background())

	router := httpserver.NewRouter(deps.RouterConfig(cfg))
	srv := httpserver.NewServer(&cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", logging.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", logging.Err(err))
			os.Exit(1)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("shutdown was not clean", logging.Err(err))
		os.Exit(1)
	}
	log.Info("stopped")
}

func loadConfig(path string) (*config.Config, error) {
	return config.Load(path)
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	format := cfg.Log.Format
	if format == "text" {
		format = "console"
	}
	out := []string{"stdout"}
	if cfg.Log.Output != "" {
		out = []string{cfg.Log.Output}
	}
	return logging.NewLogger(logging.LogConfig{
		Level:       logging.Level(cfg.Log.Level),
		Format:      format,
		OutputPaths: out,
	})
}
