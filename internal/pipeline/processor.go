// Package pipeline coordinates text extraction, parsing and reconciliation
// for a batch of documents. Processing is strictly sequential: one document
// is fully parsed and reconciled before the next begins, because serial
// assignment and duplicate detection need a consistent view of the ledger.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/extract"
	"github.com/joseph-ayodele/invoice-ledger/internal/ledger"
	"github.com/joseph-ayodele/invoice-ledger/internal/parser"
)

// Processor runs parse then reconcile for each document. Per-document
// failures are caught here; nothing a single document does can abort the
// batch.
type Processor struct {
	Logger     *slog.Logger
	Source     extract.TextSource
	Parser     *parser.Parser
	Reconciler *ledger.Reconciler

	// DebugDir, when set, receives the raw extracted text per document
	// (<stem>_extracted.txt) for post-hoc inspection.
	DebugDir string
}

func NewProcessor(logger *slog.Logger, src extract.TextSource, p *parser.Parser, r *ledger.Reconciler, debugDir string) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Source: src, Parser: p, Reconciler: r, DebugDir: debugDir}
}

// DocumentResult is the single outcome record each document yields.
type DocumentResult struct {
	DocumentID uuid.UUID
	Path       string
	Outcome    constants.Outcome
	Reason     string
	Warnings   []string
}

// BatchStats aggregates outcomes over one run.
type BatchStats struct {
	Processed  int
	Inserted   int
	Duplicates int
	Rejected   int
	POCreated  int
	Errors     int
}

// ProcessBatch runs every document through parse + reconcile, sequentially,
// and returns one result per document.
func (p *Processor) ProcessBatch(ctx context.Context, paths []string) ([]DocumentResult, BatchStats) {
	batchID := uuid.New()
	p.Logger.Info("batch.start", "batch_id", batchID, "documents", len(paths))

	results := make([]DocumentResult, 0, len(paths))
	var stats BatchStats
	for _, path := range paths {
		res := p.ProcessFile(ctx, path)
		results = append(results, res)
		stats.Processed++
		switch res.Outcome {
		case constants.OutcomeInserted:
			stats.Inserted++
		case constants.OutcomeSkippedDuplicate:
			stats.Duplicates++
		case constants.OutcomeRejectedNoKey:
			stats.Rejected++
		case constants.OutcomePOInserted:
			stats.POCreated++
		case constants.OutcomePOExists:
			// counted only under Processed
		default:
			stats.Errors++
		}
	}

	p.Logger.Info("batch.done",
		"batch_id", batchID,
		"processed", stats.Processed,
		"inserted", stats.Inserted,
		"duplicates", stats.Duplicates,
		"rejected", stats.Rejected,
		"po_created", stats.POCreated,
		"errors", stats.Errors,
	)
	return results, stats
}

// ProcessFile handles one document end to end and always returns exactly
// one outcome; errors are folded into it rather than propagated.
func (p *Processor) ProcessFile(ctx context.Context, path string) DocumentResult {
	res := DocumentResult{DocumentID: uuid.New(), Path: path}
	log := p.Logger.With("document_id", res.DocumentID, "path", path)

	text, err := p.extractText(ctx, path)
	if err != nil {
		res.Outcome = constants.OutcomeParseError
		res.Reason = err.Error()
		log.Error("document.outcome", "outcome", res.Outcome, "reason", res.Reason)
		return res
	}
	p.dumpDebugText(path, text)

	switch parser.DetectDocType(text) {
	case parser.DocInvoice:
		pr, err := p.Parser.ParseInvoice(text)
		if err != nil {
			if errors.Is(err, common.ErrMissingDedupKey) {
				res.Outcome = constants.OutcomeRejectedNoKey
			} else {
				res.Outcome = constants.OutcomeParseError
			}
			res.Reason = err.Error()
			log.Error("document.outcome", "outcome", res.Outcome, "reason", res.Reason)
			return res
		}
		res.Warnings = pr.Warnings
		rr := p.Reconciler.Reconcile(pr.Invoice)
		res.Outcome = rr.Outcome

	case parser.DocPurchaseOrder:
		po, _, err := p.Parser.ParsePurchaseOrder(text)
		if err != nil {
			res.Outcome = constants.OutcomeParseError
			res.Reason = err.Error()
			log.Error("document.outcome", "outcome", res.Outcome, "reason", res.Reason)
			return res
		}
		if p.Reconciler.RegisterPurchaseOrder(po) {
			res.Outcome = constants.OutcomePOInserted
		} else {
			res.Outcome = constants.OutcomePOExists
		}

	default:
		res.Outcome = constants.OutcomeParseError
		res.Reason = common.ErrUnknownDocType.Error()
	}

	log.Info("document.outcome", "outcome", res.Outcome, "warnings", len(res.Warnings))
	return res
}

func (p *Processor) extractText(ctx context.Context, path string) (string, error) {
	tr, err := p.Source.Extract(ctx, path)
	if err != nil {
		return "", fmt.Errorf("text extraction: %w", err)
	}
	if strings.TrimSpace(tr.Text) == "" {
		return "", fmt.Errorf("text extraction: %w", common.ErrNoText)
	}
	p.Logger.Debug("text.extracted", "path", path, "method", tr.Method, "pages", tr.Pages, "bytes", len(tr.Text))
	return tr.Text, nil
}

// dumpDebugText is write-only best effort; a failed dump never affects the
// document outcome.
func (p *Processor) dumpDebugText(path, text string) {
	if p.DebugDir == "" {
		return
	}
	if err := os.MkdirAll(p.DebugDir, 0o755); err != nil {
		p.Logger.Warn("debug.dump_failed", "error", err)
		return
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(p.DebugDir, stem+"_extracted.txt")
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		p.Logger.Warn("debug.dump_failed", "file", out, "error", err)
	}
}
