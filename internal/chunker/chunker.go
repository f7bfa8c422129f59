package chunker

import (
	"strings"

	"github.com/snapreads/studypack/internal/document"
)

// Config controls chunking behavior.
type Config struct {
	MinWords           int // Lower edge of the target word band.
	MaxWords           int // Upper edge of the target word band.
	HeadingAttachWords int // A heading seen before this many words joins the current chunk.
	WordsPerMinute     int // Reading speed used for estimated reading time.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinWords:           500,
		MaxWords:           700,
		HeadingAttachWords: 50,
		WordsPerMinute:     250,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinWords <= 0 {
		c.MinWords = d.MinWords
	}
	if c.MaxWords < c.MinWords {
		c.MaxWords = c.MinWords + (d.MaxWords - d.MinWords)
	}
	if c.HeadingAttachWords <= 0 {
		c.HeadingAttachWords = d.HeadingAttachWords
	}
	if c.WordsPerMinute <= 0 {
		c.WordsPerMinute = d.WordsPerMinute
	}
	return c
}

// Split cuts a document into ordered chunks covering every page's text
// exactly once. Chunks accumulate across sentence and paragraph boundaries
// until the word count reaches the target band; heading lines force a chunk
// boundary unless too little text has accumulated. Page boundaries are soft
// section breaks: the trailing chunk of a page may be under the band and is
// never merged into the next page.
func Split(doc *document.Document, cfg Config) []document.Chunk {
	cfg = cfg.withDefaults()

	var chunks []document.Chunk
	for _, page := range doc.Pages {
		chunks = append(chunks, splitPage(page, cfg)...)
	}
	return chunks
}

func splitPage(page document.Page, cfg Config) []document.Chunk {
	units := pageUnits(page.Text)
	if len(units) == 0 {
		return nil
	}

	var chunks []document.Chunk
	var cur strings.Builder
	var headings []string
	words := 0

	flush := func() {
		text := strings.TrimSpace(cur.String())
		if text == "" {
			cur.Reset()
			headings = nil
			words = 0
			return
		}
		wc := document.WordCountOf(text)
		chunks = append(chunks, document.Chunk{
			Text:           text,
			PageNumber:     page.Number,
			WordCount:      wc,
			ReadingMinutes: document.ReadingTime(wc, cfg.WordsPerMinute),
			Headings:       headings,
		})
		cur.Reset()
		headings = nil
		words = 0
	}

	append_ := func(text, sep string) {
		if cur.Len() > 0 {
			cur.WriteString(sep)
		}
		cur.WriteString(text)
		words += document.WordCountOf(text)
	}

	for _, u := range units {
		if u.heading {
			// A heading with almost nothing accumulated attaches to the
			// current chunk instead of forcing a pathologically small one.
			if words >= cfg.HeadingAttachWords {
				flush()
			}
			headings = append(headings, u.text)
			append_(u.text, "\n")
			continue
		}

		w := document.WordCountOf(u.text)
		if words >= cfg.MinWords && words+w > cfg.MaxWords {
			flush()
		}
		sep := " "
		if u.paragraphStart {
			sep = "\n"
		}
		append_(u.text, sep)
	}
	flush() // trailing chunk may be under the band; kept as-is

	return chunks
}
