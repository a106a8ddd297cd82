package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmsilva/teller/internal/batch"
	"github.com/jmsilva/teller/internal/config"
	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/graph"
	"github.com/jmsilva/teller/internal/logging"
	"github.com/jmsilva/teller/internal/mirror"
	"github.com/jmsilva/teller/internal/store"
)

func main() {
	var (
		accountsPath   = flag.String("accounts", "", "Path to an account load file (one account per line)")
		activitiesPath = flag.String("activities", "", "Path to an activity file applied after loading")
		report         = flag.String("report", "", "Report to print after processing: branch, holder, type, statements or archive")
		snapshotPath   = flag.String("snapshot", "", "Write the resulting accounts to this file in load format")
		export         = flag.Bool("export", false, "Export the resulting accounts to the relationship mirror (requires GRAPH_URI)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "batch")

	if *accountsPath == "" {
		logger.Error("no accounts file given")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	accounts := store.New(domain.NewSerialSource(cfg.Bank.SerialSeed))

	start := time.Now()
	lines, err := readLines(*accountsPath)
	if err != nil {
		logger.Error("failed to read accounts file", "error", err, "path", *accountsPath)
		os.Exit(1)
	}
	loaded := batch.LoadAccounts(accounts, lines)
	logger.Info("accounts loaded", "count", loaded, "path", *accountsPath)

	if *activitiesPath != "" {
		lines, err := readLines(*activitiesPath)
		if err != nil {
			logger.Error("failed to read activities file", "error", err, "path", *activitiesPath)
			os.Exit(1)
		}
		for _, msg := range batch.ProcessActivities(accounts, sourceName(*activitiesPath), lines) {
			fmt.Println(msg)
		}
	}

	if *report != "" {
		body, err := renderReport(accounts, *report)
		if err != nil {
			logger.Error("unknown report", "kind", *report)
			os.Exit(1)
		}
		fmt.Println(body)
	}

	if *snapshotPath != "" {
		if err := os.WriteFile(*snapshotPath, []byte(accounts.Snapshot()), 0o644); err != nil {
			logger.Error("failed to write snapshot", "error", err, "path", *snapshotPath)
			os.Exit(1)
		}
		logger.Info("snapshot written", "path", *snapshotPath)
	}

	if *export {
		if err := exportToMirror(ctx, cfg, accounts); err != nil {
			logger.Error("mirror export failed", "error", err)
			os.Exit(1)
		}
		logger.Info("mirror export complete", "accounts", accounts.Len())
	}

	logger.Info("batch complete", "duration", time.Since(start).String(), "accounts", accounts.Len())
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Split(string(data), "\n"), nil
}

// sourceName trims the directory and extension so processing banners read
// like the original activity file name.
func sourceName(path string) string {
	name := path
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		name = name[:idx]
	}
	return name
}

func renderReport(accounts *store.AccountStore, kind string) (string, error) {
	switch kind {
	case "branch":
		return accounts.ReportByBranch(), nil
	case "holder":
		return accounts.ReportByHolder(), nil
	case "type":
		return accounts.ReportByType(), nil
	case "statements":
		return accounts.ReportStatements(), nil
	case "archive":
		return accounts.ReportArchive(), nil
	default:
		return "", fmt.Errorf("unknown report kind %q", kind)
	}
}

func exportToMirror(ctx context.Context, cfg config.Config, accounts *store.AccountStore) error {
	if cfg.Graph.URI == "" {
		return fmt.Errorf("GRAPH_URI is required for export")
	}

	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close(context.Background())
	}()

	return mirror.New(client).ExportAccounts(ctx, accounts.Accounts())
}
