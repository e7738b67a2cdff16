package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wesleyflorence/bookchat/internal/analysis"
	"github.com/wesleyflorence/bookchat/internal/config"
	"github.com/wesleyflorence/bookchat/internal/llm"
	"github.com/wesleyflorence/bookchat/internal/segment"
	"github.com/wesleyflorence/bookchat/internal/toc"
)

// Orchestrator manages the book processing pipeline.
type Orchestrator struct {
	jobs      *JobStore
	queue     chan *Job
	extractor *toc.Extractor
	analyzer  *analysis.Analyzer
	opts      segment.Options
	log       *slog.Logger
	cfg       config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewOrchestrator creates the pipeline. Start launches its workers.
func NewOrchestrator(cfg config.Config, gen llm.Generator, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:      NewJobStore(cfg.JobTTL),
		queue:     make(chan *Job, cfg.MaxQueueSize),
		extractor: toc.NewExtractor(gen, cfg.TOCPrefixBytes),
		analyzer:  analysis.NewAnalyzer(gen, cfg.AnalysisMaxRetries),
		opts: segment.Options{
			MergeWindow: cfg.MergeWindowLines,
			MinGap:      cfg.FilterMinGapLines,
		},
		log: log,
		cfg: cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.extractor, o.analyzer, o.opts, o.log, o.cfg.OutputDir, o.cfg.PDFFallbackPdftotext)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. Safe to call more than once.
// Submissions racing with Stop are rejected rather than sent on the
// closed queue.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.queue)
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		job.SetStatus(StatusFailed, "shutting_down")
		return fmt.Errorf("pipeline is shutting down")
	}
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Analyzer returns the analyzer for direct use by API handlers
// (question answering runs outside the worker pipeline).
func (o *Orchestrator) Analyzer() *analysis.Analyzer {
	return o.analyzer
}
