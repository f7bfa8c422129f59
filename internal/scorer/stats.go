package scorer

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// docStats holds document-wide term statistics, computed once per document
// in a first pass over all chunks. The inverse document frequency is relative
// to the document's own chunks, not an external corpus.
type docStats struct {
	chunkTerms []map[string]int // term frequency per chunk
	idf        map[string]float64
}

func buildDocStats(texts []string) *docStats {
	n := len(texts)
	s := &docStats{
		chunkTerms: make([]map[string]int, n),
		idf:        make(map[string]float64),
	}

	df := make(map[string]int)
	for i, text := range texts {
		tf := make(map[string]int)
		for _, term := range tokenize(text) {
			tf[term]++
		}
		s.chunkTerms[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	for term, d := range df {
		// Smoothed idf; always positive so single-chunk documents still rank terms.
		s.idf[term] = math.Log(float64(1+n)/float64(1+d)) + 1
	}
	return s
}

// tfidf returns the tf·idf weight of every term in chunk i.
func (s *docStats) tfidf(i int) map[string]float64 {
	out := make(map[string]float64, len(s.chunkTerms[i]))
	for term, tf := range s.chunkTerms[i] {
		out[term] = float64(tf) * s.idf[term]
	}
	return out
}

// density is the total tf·idf mass of chunk i divided by its token count.
func (s *docStats) density(i int) float64 {
	terms := s.chunkTerms[i]
	total := 0
	var mass float64
	for term, tf := range terms {
		total += tf
		mass += float64(tf) * s.idf[term]
	}
	if total == 0 {
		return 0
	}
	return mass / float64(total)
}

// topTerms returns the k highest-weighted terms of chunk i. Ties break
// lexicographically so identical inputs always yield identical keywords.
func (s *docStats) topTerms(i, k int) []string {
	weights := s.tfidf(i)
	terms := make([]string, 0, len(weights))
	for term := range weights {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(a, b int) bool {
		wa, wb := weights[terms[a]], weights[terms[b]]
		if wa != wb {
			return wa > wb
		}
		return terms[a] < terms[b]
	})
	if len(terms) > k {
		terms = terms[:k]
	}
	return terms
}

// tokenize lowercases, strips punctuation, and drops stopwords and
// degenerate tokens.
func tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		tok := cur.String()
		cur.Reset()
		if len(tok) < 3 || len(tok) > 30 || stopwords[tok] {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(unicode.ToLower(r))
		case r == '\'' || r == '-':
			// keep intra-word apostrophes/hyphens out but don't break the word
		default:
			flush()
		}
	}
	flush()
	return tokens
}
