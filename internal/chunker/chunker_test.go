package chunker

import (
	"strings"
	"testing"

	"github.com/snapreads/studypack/internal/document"
)

func testConfig() Config {
	return Config{
		MinWords:           15,
		MaxWords:           25,
		HeadingAttachWords: 5,
		WordsPerMinute:     100,
	}
}

// sentence is 10 words and deliberately avoids anything heading-like.
const sentence = "the quick brown fox jumps over the lazy dog again."

func repeatSentences(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = sentence
	}
	return strings.Join(parts, " ")
}

func TestSplitCoversAllText(t *testing.T) {
	pageText := repeatSentences(3) + "\n\n" + repeatSentences(4)
	doc := &document.Document{Pages: []document.Page{{Number: 1, Text: pageText}}}

	chunks := Split(doc, testConfig())
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}

	total := 0
	for _, c := range chunks {
		total += c.WordCount
	}
	if want := document.WordCountOf(pageText); total != want {
		t.Errorf("word coverage: got %d words across chunks, page has %d", total, want)
	}
}

func TestSplitRespectsWordBand(t *testing.T) {
	doc := &document.Document{Pages: []document.Page{
		{Number: 1, Text: repeatSentences(10)},
	}}
	cfg := testConfig()

	chunks := Split(doc, cfg)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// All but the trailing chunk must land inside the band.
	for i, c := range chunks[:len(chunks)-1] {
		if c.WordCount < cfg.MinWords || c.WordCount > cfg.MaxWords {
			t.Errorf("chunk %d: %d words outside band [%d,%d]", i, c.WordCount, cfg.MinWords, cfg.MaxWords)
		}
	}
}

func TestSplitHeadingForcesBoundary(t *testing.T) {
	pageText := "INTRODUCTION\n" + repeatSentences(2) + "\n\nNEXT STEPS\n" + repeatSentences(2)
	doc := &document.Document{Pages: []document.Page{{Number: 1, Text: pageText}}}

	chunks := Split(doc, testConfig())
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if got := chunks[0].Headings; len(got) != 1 || got[0] != "INTRODUCTION" {
		t.Errorf("chunk 0 headings = %v", got)
	}
	if got := chunks[1].Headings; len(got) != 1 || got[0] != "NEXT STEPS" {
		t.Errorf("chunk 1 headings = %v", got)
	}
}

func TestSplitHeadingAttachesWhenLittleAccumulated(t *testing.T) {
	// Two headings in a row: the second arrives with only the first
	// heading's words accumulated, so it joins the same chunk.
	pageText := "OVERVIEW\nDETAILS\n" + repeatSentences(2)
	doc := &document.Document{Pages: []document.Page{{Number: 1, Text: pageText}}}

	chunks := Split(doc, testConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if got := chunks[0].Headings; len(got) != 2 {
		t.Errorf("expected both headings attached, got %v", got)
	}
}

func TestSplitNeverMergesPages(t *testing.T) {
	doc := &document.Document{Pages: []document.Page{
		{Number: 1, Text: sentence},
		{Number: 2, Text: sentence},
	}}

	chunks := Split(doc, testConfig())
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks (one per page), got %d", len(chunks))
	}
	if chunks[0].PageNumber != 1 || chunks[1].PageNumber != 2 {
		t.Errorf("page numbers = %d, %d", chunks[0].PageNumber, chunks[1].PageNumber)
	}
}

func TestSplitSkipsEmptyPages(t *testing.T) {
	doc := &document.Document{Pages: []document.Page{
		{Number: 1, Text: "   \n  \n"},
		{Number: 2, Text: sentence},
	}}

	chunks := Split(doc, testConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].PageNumber != 2 {
		t.Errorf("page number = %d, want 2", chunks[0].PageNumber)
	}
}

func TestSplitReadingTime(t *testing.T) {
	doc := &document.Document{Pages: []document.Page{{Number: 1, Text: sentence}}}
	chunks := Split(doc, testConfig())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	want := float64(chunks[0].WordCount) / 100.0
	if chunks[0].ReadingMinutes != want {
		t.Errorf("reading time = %f, want %f", chunks[0].ReadingMinutes, want)
	}
}

func TestIsHeadingLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"INTRODUCTION", true},
		{"1. Overview", true},
		{"2.3 Memory Layout", true},
		{"Chapter 7 The Heap", true},
		{"IV. Results", true},
		{"Background:", true},
		{"Getting Started with Widgets", true},
		{"the quick brown fox jumps over the lazy dog.", false},
		{"", false},
		{"a", false},
		{strings.Repeat("WORD ", 30), false},
		{"This sentence ends with a period.", false},
	}
	for _, tt := range tests {
		if got := IsHeadingLine(tt.line); got != tt.want {
			t.Errorf("IsHeadingLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one. Second one! Third one? Trailing bit")
	want := []string{"First one.", "Second one!", "Third one?", "Trailing bit"}
	if len(got) != len(want) {
		t.Fatalf("got %d sentences, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitSentencesNoBreakInsideNumbers(t *testing.T) {
	// "3.14" has no space after the period, so it must not split.
	got := splitSentences("The value of pi is 3.14 roughly. Next sentence.")
	if len(got) != 2 {
		t.Fatalf("got %d sentences: %v", len(got), got)
	}
}
