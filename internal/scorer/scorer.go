// Package scorer assigns each chunk a heuristic importance score in [0,1]
// from heading presence, keyword density, numeric content, and sentence
// shape. Scoring is fully deterministic: the same chunk text in the same
// document context always yields the same score.
package scorer

import (
	"regexp"
	"strings"
)

// Weights are the scoring composition constants. They are configuration,
// threaded explicitly through the pipeline, never read from globals.
type Weights struct {
	HeadingBonus    float64 // added when the chunk carries at least one heading
	KeywordWeight   float64 // weight on the document-normalized tf·idf density
	NumericPerMatch float64 // added per numeric token, up to NumericCap
	NumericCap      float64
	ShapeBonus      float64 // average sentence length inside the readable window
	ShapePenalty    float64 // average sentence length far outside it (noise/boilerplate)
	Floor           float64 // score for chunks with no extractable signal
}

// DefaultWeights returns the tuned defaults.
func DefaultWeights() Weights {
	return Weights{
		HeadingBonus:    0.25,
		KeywordWeight:   0.40,
		NumericPerMatch: 0.01,
		NumericCap:      0.20,
		ShapeBonus:      0.15,
		ShapePenalty:    0.15,
		Floor:           0.05,
	}
}

// Config controls scoring.
type Config struct {
	Weights          Weights
	KeywordsPerChunk int // top terms recorded on each chunk
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), KeywordsPerChunk: 8}
}

// Average sentence lengths (words) considered readable prose; outside the
// outer bounds the text is likely table artifacts or run-on boilerplate.
const (
	shapeReadableMin = 8
	shapeReadableMax = 25
	shapeNoiseMin    = 4
	shapeNoiseMax    = 45
)

var numericRe = regexp.MustCompile(`\d+(\.\d+)?%?`)

// Scorer scores chunks against document-wide term statistics.
type Scorer struct {
	cfg      Config
	stats    *docStats
	maxDense float64
}

// New computes document-wide statistics over all chunk texts. This is the
// required first pass; Score then evaluates individual chunks against it.
func New(texts []string, cfg Config) *Scorer {
	if cfg.KeywordsPerChunk <= 0 {
		cfg.KeywordsPerChunk = 8
	}
	s := &Scorer{cfg: cfg, stats: buildDocStats(texts)}
	for i := range texts {
		if d := s.stats.density(i); d > s.maxDense {
			s.maxDense = d
		}
	}
	return s
}

// Keywords returns the top salient terms of chunk i.
func (s *Scorer) Keywords(i int) []string {
	return s.stats.topTerms(i, s.cfg.KeywordsPerChunk)
}

// Score returns the importance of chunk i in [0,1]. hasHeading reports
// whether the chunk carries a structural heading.
func (s *Scorer) Score(i int, text string, hasHeading bool) float64 {
	w := s.cfg.Weights
	score := 0.0

	if hasHeading {
		score += w.HeadingBonus
	}

	if s.maxDense > 0 {
		score += w.KeywordWeight * (s.stats.density(i) / s.maxDense)
	}

	numeric := float64(len(numericRe.FindAllString(text, -1))) * w.NumericPerMatch
	score += min(numeric, w.NumericCap)

	switch avg := avgSentenceWords(text); {
	case avg >= shapeReadableMin && avg <= shapeReadableMax:
		score += w.ShapeBonus
	case avg > 0 && (avg < shapeNoiseMin || avg > shapeNoiseMax):
		score -= w.ShapePenalty
	}

	if score < w.Floor {
		return w.Floor
	}
	if score > 1 {
		return 1
	}
	return score
}

// avgSentenceWords returns the mean sentence length in words.
func avgSentenceWords(text string) float64 {
	var counts []int
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '.' || c == '!' || c == '?' || c == '\n' {
			if n := len(strings.Fields(text[start:i])); n > 0 {
				counts = append(counts, n)
			}
			start = i + 1
		}
	}
	if n := len(strings.Fields(text[start:])); n > 0 {
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return 0
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return float64(total) / float64(len(counts))
}
