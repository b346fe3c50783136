package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kapu/subtitle-vocab-go/internal/app"
	"github.com/kapu/subtitle-vocab-go/internal/config"
	"github.com/kapu/subtitle-vocab-go/internal/service/reconcile"
	"github.com/kapu/subtitle-vocab-go/internal/util"
	"go.uber.org/zap"
)

var (
	storeKind   = flag.String("store", config.StoreREST, "word table backend: rest or postgres")
	concurrency = flag.Int("concurrency", 0, "rows written at once (0 uses BACKFILL_CONCURRENCY)")
	dryRun      = flag.Bool("dry-run", false, "classify rows without writing them back")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *concurrency > 0 {
		cfg.Backfill.Concurrency = *concurrency
	}
	if err := cfg.ValidateBackfill(*storeKind); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *dryRun {
		logger.Info("[DRY RUN MODE] No database changes will be made")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Backfill aborted", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sources := make([]reconcile.ReferenceSource, 0, len(cfg.Backfill.References))
	for _, ref := range cfg.Backfill.References {
		sources = append(sources, reconcile.ReferenceSource{Label: ref.Label, Path: ref.Path})
	}
	refs := reconcile.LoadReferences(sources, logger)

	container, err := app.BuildStore(cfg, *storeKind, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reconciler := reconcile.NewReconciler(container.Store, reconcile.NewClassifier(refs), reconcile.Options{
		Rules: reconcile.Rules{
			SeriesName: cfg.Backfill.SeriesName,
			Status:     cfg.Backfill.Status,
		},
		Concurrency: cfg.Backfill.Concurrency,
		DryRun:      *dryRun,
	}, logger)

	result, err := reconciler.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Backfill finished",
		zap.String("store", *storeKind),
		zap.Int("fetched", result.Fetched),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
		zap.Int("unmatched", result.Unmatched),
		zap.Any("matched", result.Matched),
		zap.Duration("elapsed", result.Elapsed),
	)
	return nil
}
