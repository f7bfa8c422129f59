package llm

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/snapreads/studypack/internal/pack"
)

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// stripCodeBlock removes a surrounding markdown fence that models sometimes
// wrap JSON answers in.
func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// ValidateQuestion checks a model-produced quiz question. Returns true if it
// is usable; malformed entries are dropped rather than failing the batch.
func ValidateQuestion(q *pack.QuizQuestion) bool {
	if q == nil {
		return false
	}
	q.Question = strings.TrimSpace(q.Question)
	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	if len(q.Question) < 5 || len(q.Question) > 500 {
		return false
	}
	if len(q.Options) != 4 {
		return false
	}
	found := false
	for i, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return false
		}
		q.Options[i] = opt
		if opt == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return false
	}
	if len(q.Explanation) > 1000 {
		cut := 1000
		for cut > 0 && !utf8.RuneStart(q.Explanation[cut]) {
			cut--
		}
		q.Explanation = q.Explanation[:cut]
	}
	return true
}
