package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wesleyflorence/bookchat/internal/analysis"
	"github.com/wesleyflorence/bookchat/internal/book"
	"github.com/wesleyflorence/bookchat/internal/parser"
	"github.com/wesleyflorence/bookchat/internal/segment"
	"github.com/wesleyflorence/bookchat/internal/toc"
)

// Worker processes a single book job: parse, segment, analyze.
type Worker struct {
	extractor *toc.Extractor
	analyzer  *analysis.Analyzer
	opts      segment.Options
	log       *slog.Logger

	outputDir   string
	pdfFallback bool
}

func NewWorker(extractor *toc.Extractor, analyzer *analysis.Analyzer, opts segment.Options, log *slog.Logger, outputDir string, pdfFallback bool) *Worker {
	return &Worker{
		extractor:   extractor,
		analyzer:    analyzer,
		opts:        opts,
		log:         log,
		outputDir:   outputDir,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full pipeline for a job. Segmentation failures (no
// table of contents, no matching titles) fail the job; analysis failures
// degrade individual chapters to placeholder text and mark the job
// partial at worst.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "book", job.Filename)

	// Phase 1: Parse.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.pdfFallback
	}

	text, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	title := job.Title
	if title == "" {
		title = strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename))
	}
	doc := book.NewDocument(title, text)

	// Phase 2: Extract the table of contents.
	job.SetStatus(StatusExtractingTOC, "extracting_toc")
	titles, err := w.extractor.Extract(ctx, doc)
	if err != nil {
		if errors.Is(err, toc.ErrNoTableOfContents) {
			log.Warn("no table of contents found")
			job.AddError("no table of contents found; unable to split the book")
		} else {
			log.Error("toc extraction failed", "error", err)
			job.AddError(fmt.Sprintf("extract toc: %s", err))
		}
		job.SetStatus(StatusFailed, "extracting_toc")
		return
	}
	log.Info("extracted toc", "titles", len(titles))

	// Phase 3: Scan and reconcile occurrences.
	job.SetStatus(StatusScanning, "scanning")
	occurrences := segment.FindOccurrences(doc, titles, nil)
	starts := segment.Reconcile(occurrences, w.opts)
	if len(starts) == 0 {
		log.Warn("no chapter starts found", "raw_occurrences", len(occurrences))
		job.AddError(segment.ErrNoOccurrences.Error())
		job.SetStatus(StatusFailed, "scanning")
		return
	}
	log.Info("reconciled occurrences", "raw", len(occurrences), "starts", len(starts))

	// Phase 4: Split into chapter ranges.
	job.SetStatus(StatusSplitting, "splitting")
	chapters, err := segment.Split(doc, starts)
	if err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "splitting")
		return
	}
	job.SetChapters(chapters)
	job.SetTotalChapters(len(chapters))
	log.Info("split book", "chapters", len(chapters))

	// Phase 5: Analyze chapters sequentially. The scratchpad carries the
	// tail of each analysis into the next prompt, so order matters.
	job.SetStatus(StatusAnalyzing, "analyzing")
	job.InitReview(title)
	hadErrors := false
	scratchpad := ""
	for i, ch := range chapters {
		if ctx.Err() != nil {
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "analyzing")
			return
		}
		log.Info("analyzing chapter", "index", i+1, "total", len(chapters), "key", ch.Key)
		text, err := w.analyzer.AnalyzeChapter(ctx, ch, scratchpad)
		if err != nil {
			log.Error("analysis failed", "key", ch.Key, "error", err)
			job.AddError(fmt.Sprintf("chapter %s: %s", ch.Key, err))
			hadErrors = true
		}
		job.AppendAnalysis(text)
		job.IncrChaptersAnalyzed()
		scratchpad = analysis.NextScratchpad(text)
	}

	if w.outputDir != "" {
		if err := w.writeReview(job, title); err != nil {
			log.Error("review write failed", "error", err)
			job.AddError(fmt.Sprintf("write review: %s", err))
			hadErrors = true
		}
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("analysis complete", "chapters", len(chapters), "errors", hadErrors)
}

// writeReview saves the review markdown next to the configured output dir.
func (w *Worker) writeReview(job *Job, title string) error {
	name := book.SafeFilename(title) + "-ai-review.md"
	path := filepath.Join(w.outputDir, name)
	return os.WriteFile(path, []byte(job.ReviewMarkdown()), 0o644)
}
