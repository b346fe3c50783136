package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/kapu/subtitle-vocab-go/internal/domain"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Store is the remote word table as seen by the backfill.
type Store interface {
	ListAll(ctx context.Context) ([]*domain.WordRecord, error)
	UpdateClassification(ctx context.Context, record *domain.WordRecord) error
}

type Options struct {
	Rules Rules
	// Concurrency is the number of rows written at once. 1 keeps the run
	// strictly sequential in fetch order.
	Concurrency int
	DryRun      bool
}

// Result summarises one run.
type Result struct {
	Fetched   int
	Updated   int
	Failed    int
	Skipped   int
	Unmatched int
	Matched   map[string]int
	Elapsed   time.Duration
}

type Reconciler struct {
	store      Store
	classifier *Classifier
	opts       Options
	logger     *zap.Logger
}

func NewReconciler(store Store, classifier *Classifier, opts Options, logger *zap.Logger) *Reconciler {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Reconciler{
		store:      store,
		classifier: classifier,
		opts:       opts,
		logger:     logger,
	}
}

// Run fetches every record, reclassifies it and writes it back. A failed
// fetch aborts the run before any row is touched; a failed write is logged
// and the run moves on to the next row.
func (r *Reconciler) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	records, err := r.store.ListAll(ctx)
	if err != nil {
		r.logger.Error("Failed to fetch words", zap.Error(err))
		return Result{}, err
	}

	if len(records) == 0 {
		r.logger.Info("No records found")
		return Result{Matched: map[string]int{}, Elapsed: time.Since(start)}, nil
	}

	r.logger.Info("Reconciling words",
		zap.Int("count", len(records)),
		zap.Int("concurrency", r.opts.Concurrency),
		zap.Bool("dry_run", r.opts.DryRun),
	)

	t := &tally{result: Result{Fetched: len(records), Matched: map[string]int{}}}

	if r.opts.Concurrency == 1 {
		for _, record := range records {
			if ctx.Err() != nil {
				break
			}
			r.process(ctx, record, t)
		}
	} else {
		p := pool.New().WithMaxGoroutines(r.opts.Concurrency)
		for _, record := range records {
			if ctx.Err() != nil {
				break
			}
			record := record
			p.Go(func() {
				r.process(ctx, record, t)
			})
		}
		p.Wait()
	}

	result := t.result
	result.Elapsed = time.Since(start)
	if err := ctx.Err(); err != nil {
		r.logger.Warn("Reconciliation interrupted",
			zap.Int("processed", result.Updated+result.Failed+result.Skipped),
			zap.Int("fetched", result.Fetched),
		)
		return result, err
	}
	return result, nil
}

func (r *Reconciler) process(ctx context.Context, record *domain.WordRecord, t *tally) {
	label, matched := r.classifier.Apply(record, r.opts.Rules)
	t.classified(label, matched)

	if r.opts.DryRun {
		r.logger.Debug("Dry run, skipping update",
			zap.Int64("id", record.ID),
			zap.String("episode", record.EpisodeLabel()),
		)
		t.skipped()
		return
	}

	if err := r.store.UpdateClassification(ctx, record); err != nil {
		r.logger.Error("Update error for record",
			zap.Int64("id", record.ID),
			zap.Error(err),
		)
		t.failed()
		return
	}

	r.logger.Debug("Updated record",
		zap.Int64("id", record.ID),
		zap.String("series_name", record.SeriesName),
		zap.Int("status", record.Status),
		zap.String("episode", record.EpisodeLabel()),
	)
	t.updated()
}

type tally struct {
	mu     sync.Mutex
	result Result
}

func (t *tally) classified(label string, matched bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if matched {
		t.result.Matched[label]++
	} else {
		t.result.Unmatched++
	}
}

func (t *tally) updated() {
	t.mu.Lock()
	t.result.Updated++
	t.mu.Unlock()
}

func (t *tally) failed() {
	t.mu.Lock()
	t.result.Failed++
	t.mu.Unlock()
}

func (t *tally) skipped() {
	t.mu.Lock()
	t.result.Skipped++
	t.mu.Unlock()
}
