package pack

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/snapreads/studypack/internal/document"
)

// AssemblerConfig controls pack assembly.
type AssemblerConfig struct {
	KeyPointCount      int     // top-K chunks considered for takeaways
	ImportantThreshold float64 // importance score at or above which a point is "important"
	QuizQuestions      int     // questions requested from the generator
	MaxQuizInputChars  int     // quiz/paraphrase input truncation bound
}

// DefaultAssemblerConfig returns sensible defaults.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		KeyPointCount:      10,
		ImportantThreshold: 0.7,
		QuizQuestions:      3,
		MaxQuizInputChars:  8000,
	}
}

// Assembler combines a condensed selection into the final study pack.
type Assembler struct {
	cfg         AssemblerConfig
	quiz        QuizGenerator
	paraphraser Paraphraser
	log         *slog.Logger
}

// NewAssembler builds an assembler. quiz and paraphraser may be nil, in
// which case the pack ships without a quiz and with unparaphrased points.
func NewAssembler(cfg AssemblerConfig, quiz QuizGenerator, paraphraser Paraphraser, log *slog.Logger) *Assembler {
	if cfg.KeyPointCount <= 0 {
		cfg.KeyPointCount = 10
	}
	if cfg.QuizQuestions <= 0 {
		cfg.QuizQuestions = 3
	}
	if cfg.MaxQuizInputChars <= 0 {
		cfg.MaxQuizInputChars = 8000
	}
	if cfg.ImportantThreshold <= 0 {
		cfg.ImportantThreshold = 0.7
	}
	return &Assembler{cfg: cfg, quiz: quiz, paraphraser: paraphraser, log: log}
}

// Assemble builds the study pack from the final (post-condensation) chunks.
// notes are advisory strings accumulated by earlier pipeline stages.
func (a *Assembler) Assemble(ctx context.Context, docTitle, filename string, chunks []document.Chunk, caps Capabilities, notes []string) *StudyPack {
	p := &StudyPack{
		CondensedContent: chunks,
		OriginalFilename: filename,
		ProcessingNotes:  notes,
		KeyPoints:        []KeyPoint{},
		Quiz:             []QuizQuestion{},
	}
	for _, c := range chunks {
		p.TotalMinutes += c.ReadingMinutes
		p.TotalWords += c.WordCount
	}

	p.Outline = buildOutline(docTitle, chunks, p.TotalMinutes)

	if caps.AllowKeyPoints {
		p.KeyPoints = a.keyPoints(ctx, chunks, p)
	}

	if caps.AllowQuiz && a.quiz != nil {
		text := truncateChars(combinedText(chunks), a.cfg.MaxQuizInputChars)
		quiz, err := a.quiz.GenerateQuiz(ctx, text, a.cfg.QuizQuestions)
		if err != nil {
			a.log.Warn("quiz generation failed, shipping without quiz", "error", err)
			p.ProcessingNotes = append(p.ProcessingNotes, "Quiz could not be generated for this document.")
		} else {
			p.Quiz = quiz
		}
	}

	if p.ProcessingNotes == nil {
		p.ProcessingNotes = []string{}
	}
	return p
}

// buildOutline emits one entry per distinct heading in document order. When
// the document has no headings at all, a single implicit entry spans the
// whole pack.
func buildOutline(docTitle string, chunks []document.Chunk, totalMinutes float64) []OutlineItem {
	outline := []OutlineItem{}
	seen := make(map[string]bool)
	for _, c := range chunks {
		for _, h := range c.Headings {
			h = strings.TrimSpace(h)
			if h == "" || seen[h] {
				continue
			}
			seen[h] = true
			outline = append(outline, OutlineItem{
				Title:          h,
				PageNumber:     c.PageNumber,
				ReadingMinutes: c.ReadingMinutes,
			})
		}
	}

	if len(outline) == 0 && len(chunks) > 0 {
		title := docTitle
		if title == "" {
			title = firstSentence(chunks[0].Text, 50)
		}
		outline = append(outline, OutlineItem{
			Title:          title,
			PageNumber:     chunks[0].PageNumber,
			ReadingMinutes: totalMinutes,
		})
	}
	return outline
}

var caveatRe = regexp.MustCompile(`(?i)\b(however|limitation|limitations|caveat|caution|warning|drawback|beware|except|risk|risks|should not|do not|avoid)\b`)

// keyPoints derives takeaways from the top-K chunks by importance,
// paraphrased when a paraphraser is available.
func (a *Assembler) keyPoints(ctx context.Context, chunks []document.Chunk, p *StudyPack) []KeyPoint {
	// Rank by score descending, ties keep document order.
	order := make([]int, len(chunks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return chunks[order[x]].Score > chunks[order[y]].Score
	})
	if len(order) > a.cfg.KeyPointCount {
		order = order[:a.cfg.KeyPointCount]
	}
	// Present takeaways in document order.
	sort.Ints(order)

	sentences := make([]string, len(order))
	for i, idx := range order {
		sentences[i] = firstSentence(chunks[idx].Text, 200)
	}

	if a.paraphraser != nil && len(sentences) > 0 {
		rewritten, err := a.paraphraser.Paraphrase(ctx, sentences)
		if err != nil {
			a.log.Warn("paraphrase failed, using extracted sentences", "error", err)
		} else {
			sentences = rewritten
		}
	}

	points := make([]KeyPoint, 0, len(order))
	for i, idx := range order {
		c := chunks[idx]
		category := CategoryNormal
		switch {
		case caveatRe.MatchString(c.Text):
			category = CategoryWarning
		case c.Score >= a.cfg.ImportantThreshold:
			category = CategoryImportant
		}
		points = append(points, KeyPoint{
			Point:    strings.TrimSpace(sentences[i]),
			Category: category,
		})
	}

	if len(points) >= a.cfg.KeyPointCount {
		p.ProcessingNotes = append(p.ProcessingNotes, fmt.Sprintf(
			"This document has %d or more key takeaways; a longer reading time gives fuller coverage.", a.cfg.KeyPointCount))
	}
	return points
}

// firstSentence returns the leading sentence of text, capped at maxChars.
func firstSentence(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && (i+1 == len(text) || text[i+1] == ' ' || text[i+1] == '\n') {
			text = text[:i+1]
			break
		}
		if c == '\n' {
			text = text[:i]
			break
		}
	}
	if len(text) > maxChars {
		text = strings.TrimSpace(truncateChars(text, maxChars)) + "..."
	}
	return text
}

func combinedText(chunks []document.Chunk) string {
	var sb strings.Builder
	for i, c := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// truncateChars cuts s to at most n bytes without splitting a rune.
func truncateChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
