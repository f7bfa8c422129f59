package scorer

import "github.com/snapreads/studypack/internal/document"

// Enrich scores every chunk against the whole document and fills in the
// keyword list. It returns enriched copies; the inputs are not mutated.
func Enrich(chunks []document.Chunk, cfg Config) []document.Chunk {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	s := New(texts, cfg)

	out := make([]document.Chunk, len(chunks))
	for i, c := range chunks {
		c.Keywords = s.Keywords(i)
		c.Score = s.Score(i, c.Text, len(c.Headings) > 0)
		out[i] = c
	}
	return out
}
