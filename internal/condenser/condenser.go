// Package condenser shortens selected chunks whose reading time materially
// exceeds their share of the budget. Condensation is best-effort: a failed
// or timed-out rewrite keeps the original chunk, and selection correctness
// never depends on it succeeding.
package condenser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/snapreads/studypack/internal/document"
)

// Summarizer is the external summarization capability: text in, shorter
// text out. Implementations must respect ctx cancellation.
type Summarizer interface {
	Summarize(ctx context.Context, text string, targetWords int) (string, error)
}

// Config controls condensation.
type Config struct {
	BudgetFraction    float64       // per-chunk ceiling as a fraction of the total budget
	MinCeilingMinutes float64       // ceiling never drops below this
	MaxInputChars     int           // truncate text before sending, never unbounded
	CallTimeout       time.Duration // per-call bound on the external service
	MaxConcurrent     int           // fan-out cap, respects the provider's rate limit
	WordsPerMinute    int           // reading speed for recomputed estimates
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BudgetFraction:    0.25,
		MinCeilingMinutes: 5.0,
		MaxInputChars:     12000,
		CallTimeout:       60 * time.Second,
		MaxConcurrent:     3,
		WordsPerMinute:    250,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BudgetFraction <= 0 || c.BudgetFraction > 1 {
		c.BudgetFraction = d.BudgetFraction
	}
	if c.MinCeilingMinutes <= 0 {
		c.MinCeilingMinutes = d.MinCeilingMinutes
	}
	if c.MaxInputChars <= 0 {
		c.MaxInputChars = d.MaxInputChars
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = d.CallTimeout
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = d.MaxConcurrent
	}
	if c.WordsPerMinute <= 0 {
		c.WordsPerMinute = d.WordsPerMinute
	}
	return c
}

// Ceiling returns the per-chunk reading time ceiling for a budget. Deep mode
// (the longest budget) doubles it so long-form content survives intact.
func (c Config) Ceiling(budgetMinutes float64, deep bool) float64 {
	ceiling := budgetMinutes * c.BudgetFraction
	if ceiling < c.MinCeilingMinutes {
		ceiling = c.MinCeilingMinutes
	}
	if deep {
		ceiling *= 2
	}
	return ceiling
}

// Condense rewrites every chunk over the ceiling through the summarizer,
// fanning out over independent chunks with bounded concurrency and joining
// on all results. The returned slice preserves order; notes report any
// fallbacks. Chunks at or under the ceiling pass through untouched.
func Condense(ctx context.Context, chunks []document.Chunk, budgetMinutes float64, deep bool, s Summarizer, cfg Config, log *slog.Logger) ([]document.Chunk, []string) {
	cfg = cfg.withDefaults()
	out := make([]document.Chunk, len(chunks))
	copy(out, chunks)
	if s == nil {
		return out, nil
	}

	ceiling := cfg.Ceiling(budgetMinutes, deep)
	targetWords := int(ceiling * float64(cfg.WordsPerMinute))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		notes []string
	)
	sem := make(chan struct{}, cfg.MaxConcurrent)

	for i := range chunks {
		if chunks[i].ReadingMinutes <= ceiling {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			replacement, err := condenseOne(ctx, chunks[i], targetWords, s, cfg)
			if err != nil {
				log.Warn("condensation failed, keeping original chunk",
					"page", chunks[i].PageNumber, "error", err)
				mu.Lock()
				notes = append(notes, fmt.Sprintf(
					"Section on page %d could not be condensed and is shown in full.", chunks[i].PageNumber))
				mu.Unlock()
				return
			}
			mu.Lock()
			out[i] = replacement
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	return out, notes
}

// condenseOne produces the replacement chunk for one oversized chunk.
func condenseOne(ctx context.Context, c document.Chunk, targetWords int, s Summarizer, cfg Config) (document.Chunk, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CallTimeout)
	defer cancel()

	input := c.Text
	if len(input) > cfg.MaxInputChars {
		cut := cfg.MaxInputChars
		for cut > 0 && !utf8.RuneStart(input[cut]) {
			cut--
		}
		input = input[:cut]
	}

	text, err := s.Summarize(ctx, input, targetWords)
	if err != nil {
		return document.Chunk{}, err
	}
	wc := document.WordCountOf(text)
	if wc == 0 || wc >= c.WordCount {
		return document.Chunk{}, fmt.Errorf("summary did not shrink chunk (%d -> %d words)", c.WordCount, wc)
	}

	// Derived chunk: new text and estimates, same structural metadata.
	return document.Chunk{
		Text:           text,
		PageNumber:     c.PageNumber,
		WordCount:      wc,
		ReadingMinutes: document.ReadingTime(wc, cfg.WordsPerMinute),
		Score:          c.Score,
		Headings:       c.Headings,
		Keywords:       c.Keywords,
	}, nil
}
