// Package pipeline runs the full study-pack transformation for one upload:
// Extract -> Chunk -> Score -> Select -> Condense -> Assemble. Each run is a
// synchronous, stateless computation owning its own data; only condensation
// and quiz generation touch the network, and both degrade gracefully.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/snapreads/studypack/internal/chunker"
	"github.com/snapreads/studypack/internal/condenser"
	"github.com/snapreads/studypack/internal/config"
	"github.com/snapreads/studypack/internal/pack"
	"github.com/snapreads/studypack/internal/parser"
	"github.com/snapreads/studypack/internal/plan"
	"github.com/snapreads/studypack/internal/scorer"
	"github.com/snapreads/studypack/internal/selector"
)

// Request is one study-pack job.
type Request struct {
	Data          []byte
	Filename      string
	BudgetMinutes float64
	Caps          pack.Capabilities
}

// Pipeline holds the per-process wiring; all per-request state lives on the
// stack of Run.
type Pipeline struct {
	chunkCfg    chunker.Config
	scoreCfg    scorer.Config
	condenseCfg condenser.Config

	summarizer condenser.Summarizer // model-backed; nil when no API key
	lead       condenser.Summarizer // deterministic extractive fallback
	assembler  *pack.Assembler
	log        *slog.Logger
}

// New wires a pipeline. summarizer, quiz, and paraphraser may be nil; the
// pipeline then runs fully local (extractive condensation, no quiz).
func New(cfg config.Config, summarizer condenser.Summarizer, quiz pack.QuizGenerator, paraphraser pack.Paraphraser, log *slog.Logger) *Pipeline {
	return &Pipeline{
		chunkCfg:    cfg.ChunkerConfig(),
		scoreCfg:    cfg.ScorerConfig(),
		condenseCfg: cfg.CondenserConfig(),
		summarizer:  summarizer,
		lead:        condenser.LeadSummarizer{},
		assembler:   pack.NewAssembler(cfg.AssemblerConfig(), quiz, paraphraser, log),
		log:         log,
	}
}

// Run executes the pipeline. The only error it returns is the terminal
// extraction failure; degraded summarization surfaces as processing notes.
func (p *Pipeline) Run(ctx context.Context, req Request) (*pack.StudyPack, error) {
	log := p.log.With("filename", req.Filename, "budget_minutes", req.BudgetMinutes)

	fileParser, err := parser.ForFile(req.Filename)
	if err != nil {
		return nil, err
	}
	doc, err := fileParser.Parse(bytes.NewReader(req.Data), req.Filename)
	if err != nil {
		return nil, err
	}
	log.Info("extracted document", "pages", len(doc.Pages))

	chunks := chunker.Split(doc, p.chunkCfg)
	if len(chunks) == 0 {
		return nil, &parser.ExtractionError{Reason: parser.ReasonNoText}
	}
	log.Info("chunked document", "chunks", len(chunks))

	chunks = scorer.Enrich(chunks, p.scoreCfg)

	sel := selector.Select(chunks, req.BudgetMinutes)
	log.Info("selected chunks",
		"selected", len(sel.Chunks),
		"candidates", sel.CandidateCount,
		"total_minutes", sel.TotalMinutes)

	notes := []string{fmt.Sprintf("Processed for a %.0f minute reading time.", req.BudgetMinutes)}
	deep := req.BudgetMinutes >= plan.DeepModeMinutes
	if deep {
		notes = append(notes, "Deep summary mode: more comprehensive content included.")
	}
	notes = append(notes, sel.Warnings...)

	summarizer := p.lead
	if req.Caps.AllowLLMCondense && p.summarizer != nil {
		summarizer = p.summarizer
	}
	condensed, condNotes := condenser.Condense(ctx, sel.Chunks, req.BudgetMinutes, deep, summarizer, p.condenseCfg, log)
	notes = append(notes, condNotes...)

	return p.assembler.Assemble(ctx, doc.Title, req.Filename, condensed, req.Caps, notes), nil
}
