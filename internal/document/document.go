package document

// Document is the parsed form of one upload. It lives for a single request
// and is never persisted.
type Document struct {
	Title string // Document title (from metadata or filename)
	Pages []Page // Pages in document order
}

// Page holds the raw extracted text of one page.
type Page struct {
	Number int    // 1-based page number
	Text   string // Raw extracted text (may be empty)
}

// Chunk is the unit of selection: a bounded-size slice of page text with
// scoring and structural metadata. Chunks are immutable once scored; the
// condenser builds a replacement rather than mutating in place.
type Chunk struct {
	Text           string   `json:"text"`
	PageNumber     int      `json:"page_number"`
	WordCount      int      `json:"word_count"`
	ReadingMinutes float64  `json:"reading_time_minutes"`
	Score          float64  `json:"importance_score"`
	Headings       []string `json:"headings"`
	Keywords       []string `json:"keywords"`
}

// WordCountOf counts whitespace-separated words in s.
func WordCountOf(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			inWord = false
		default:
			if !inWord {
				n++
				inWord = true
			}
		}
	}
	return n
}

// ReadingTime converts a word count to minutes at the given reading speed.
func ReadingTime(words, wordsPerMinute int) float64 {
	if wordsPerMinute <= 0 {
		return 0
	}
	return float64(words) / float64(wordsPerMinute)
}

// Selection is the budget selector's output: the chosen chunks restored to
// document order, plus bookkeeping for the assembler.
type Selection struct {
	Chunks         []Chunk  // Selected chunks in document order
	TotalMinutes   float64  // Cumulative estimated reading time
	TotalWords     int      // Cumulative word count
	CandidateCount int      // Number of chunks considered
	Warnings       []string // Advisory selection warnings
}
