package scorer

import (
	"reflect"
	"testing"

	"github.com/snapreads/studypack/internal/document"
)

var sampleTexts = []string{
	"Memory allocation in the runtime uses size classes. Each size class maps a range of object sizes to a fixed slab layout. Allocation requests round up to the nearest class.",
	"The garbage collector runs concurrently with the program. Write barriers keep the heap invariants during marking. Collection pauses stay below a millisecond in practice.",
	"Profiling shows allocation hot spots in the request decoder. Reducing per-request allocations cut latency by 40% in the benchmark suite.",
}

func sampleChunks() []document.Chunk {
	chunks := make([]document.Chunk, len(sampleTexts))
	for i, t := range sampleTexts {
		chunks[i] = document.Chunk{Text: t, PageNumber: i + 1, WordCount: document.WordCountOf(t)}
	}
	return chunks
}

func TestEnrichDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := Enrich(sampleChunks(), cfg)
	b := Enrich(sampleChunks(), cfg)

	for i := range a {
		if a[i].Score != b[i].Score {
			t.Errorf("chunk %d: scores differ across runs: %f vs %f", i, a[i].Score, b[i].Score)
		}
		if !reflect.DeepEqual(a[i].Keywords, b[i].Keywords) {
			t.Errorf("chunk %d: keywords differ across runs: %v vs %v", i, a[i].Keywords, b[i].Keywords)
		}
	}
}

func TestEnrichScoreRange(t *testing.T) {
	cfg := DefaultConfig()
	for i, c := range Enrich(sampleChunks(), cfg) {
		if c.Score < cfg.Weights.Floor || c.Score > 1 {
			t.Errorf("chunk %d: score %f outside [%f,1]", i, c.Score, cfg.Weights.Floor)
		}
	}
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	in := sampleChunks()
	Enrich(in, DefaultConfig())
	for i, c := range in {
		if c.Score != 0 || c.Keywords != nil {
			t.Errorf("chunk %d mutated: score=%f keywords=%v", i, c.Score, c.Keywords)
		}
	}
}

func TestHeadingRaisesScore(t *testing.T) {
	cfg := DefaultConfig()
	text := sampleTexts[0]
	s := New([]string{text, text}, cfg)

	with := s.Score(0, text, true)
	without := s.Score(1, text, false)
	if with <= without {
		t.Errorf("heading should raise score: with=%f without=%f", with, without)
	}
}

func TestScoreFloorOnSignallessText(t *testing.T) {
	cfg := DefaultConfig()
	text := "a b c"
	s := New([]string{text}, cfg)
	if got := s.Score(0, text, false); got != cfg.Weights.Floor {
		t.Errorf("score = %f, want floor %f", got, cfg.Weights.Floor)
	}
}

func TestNumericContentCapped(t *testing.T) {
	w := DefaultWeights()
	// 40 numeric tokens at 0.01 each would add 0.40 uncapped.
	text := ""
	for i := 0; i < 40; i++ {
		text += "17 "
	}
	s := New([]string{text}, Config{Weights: w, KeywordsPerChunk: 4})
	got := s.Score(0, text, false)
	// Numbers contribute at most NumericCap; density is maximal for the only
	// chunk so the keyword term also lands in full.
	max := w.NumericCap + w.KeywordWeight + w.ShapeBonus
	if got > max {
		t.Errorf("score %f exceeds cap-derived bound %f", got, max)
	}
}

func TestTopTermsLexicographicTieBreak(t *testing.T) {
	s := New([]string{"zebra apple"}, DefaultConfig())
	got := s.Keywords(0)
	want := []string{"apple", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keywords = %v, want %v", got, want)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("The Allocator uses size-classes, and the heap!")
	// Stopwords and short tokens dropped, case folded, punctuation split.
	want := []string{"allocator", "uses", "sizeclasses", "heap"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}

func TestAvgSentenceWords(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"one two three.", 3},
		{"one two. three four five six.", 3},
		{"", 0},
	}
	for _, tt := range tests {
		if got := avgSentenceWords(tt.text); got != tt.want {
			t.Errorf("avgSentenceWords(%q) = %f, want %f", tt.text, got, tt.want)
		}
	}
}
