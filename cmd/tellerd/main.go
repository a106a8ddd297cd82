package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmsilva/teller/internal/batch"
	"github.com/jmsilva/teller/internal/config"
	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/graph"
	"github.com/jmsilva/teller/internal/logging"
	"github.com/jmsilva/teller/internal/mirror"
	"github.com/jmsilva/teller/internal/server"
	"github.com/jmsilva/teller/internal/store"
	"github.com/jmsilva/teller/internal/teller"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	graphClient, err := buildGraphClient(ctx, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	accounts := store.New(domain.NewSerialSource(cfg.Bank.SerialSeed))
	if cfg.Bank.SnapshotPath != "" {
		loaded, err := reloadSnapshot(accounts, cfg.Bank.SnapshotPath)
		if err != nil {
			logger.Error("snapshot reload failed", "error", err, "path", cfg.Bank.SnapshotPath)
			os.Exit(1)
		}
		logger.Info("snapshot reloaded", "accounts", loaded, "path", cfg.Bank.SnapshotPath)
	}

	svc := teller.New(accounts, logger)
	apiHandlers := server.NewAPIHandlers(logger, svc, mirror.New(graphClient))

	router := server.NewRouter(logger, server.RouterDependencies{
		Health: server.GraphHealthService{Client: graphClient},
		API:    apiHandlers,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// buildGraphClient returns nil when no mirror is configured; the server
// runs fully in memory in that mode.
func buildGraphClient(ctx context.Context, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, nil
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	return graph.NewNeo4jClient(ctx, opts)
}

func reloadSnapshot(accounts *store.AccountStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return batch.LoadAccounts(accounts, strings.Split(string(data), "\n")), nil
}
