package condenser

import (
	"context"
	"strings"
)

// LeadSummarizer is a deterministic extractive fallback: it keeps leading
// sentences until the word target is reached. Used for the free tier and
// whenever no model-backed summarizer is configured.
type LeadSummarizer struct{}

func (LeadSummarizer) Summarize(_ context.Context, text string, targetWords int) (string, error) {
	if targetWords <= 0 {
		return text, nil
	}

	var out strings.Builder
	words := 0
	start := 0
	flushed := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && (i+1 == len(text) || text[i+1] == ' ' || text[i+1] == '\n') {
			sentence := strings.TrimSpace(text[start : i+1])
			start = i + 1
			if sentence == "" {
				continue
			}
			w := len(strings.Fields(sentence))
			if flushed && words+w > targetWords {
				return out.String(), nil
			}
			if out.Len() > 0 {
				out.WriteString(" ")
			}
			out.WriteString(sentence)
			words += w
			flushed = true
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" && (!flushed || words+len(strings.Fields(tail)) <= targetWords) {
		if out.Len() > 0 {
			out.WriteString(" ")
		}
		out.WriteString(tail)
	}
	return out.String(), nil
}
