package chunker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// unit is one accumulation step: either a heading line or a single sentence.
type unit struct {
	text           string
	heading        bool
	paragraphStart bool
}

// pageUnits turns raw page text into an ordered sequence of heading and
// sentence units. Blank lines separate paragraphs; consecutive non-heading
// lines within a paragraph are joined before sentence splitting.
func pageUnits(text string) []unit {
	var units []unit
	var para strings.Builder

	flushPara := func() {
		p := strings.TrimSpace(para.String())
		para.Reset()
		if p == "" {
			return
		}
		for i, sent := range splitSentences(p) {
			units = append(units, unit{text: sent, paragraphStart: i == 0})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flushPara()
		case IsHeadingLine(line):
			flushPara()
			units = append(units, unit{text: line, heading: true})
		default:
			if para.Len() > 0 {
				para.WriteString(" ")
			}
			para.WriteString(line)
		}
	}
	flushPara()

	return units
}

var (
	numberedHeadingRe = regexp.MustCompile(`^(\d+(\.\d+)*[.)]?|[IVXLC]+\.|Chapter\s+\d+|Section\s+\d+)\s+\S`)
	labelHeadingRe    = regexp.MustCompile(`^[A-Z][A-Za-z0-9\s]{1,60}:$`)
)

// IsHeadingLine reports whether a line looks like a section heading: short,
// all-caps, numbered, or a label ending in a colon. Heuristic by nature.
func IsHeadingLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) > 80 {
		return false
	}
	if len(strings.Fields(line)) > 12 {
		return false
	}
	if isAllCaps(line) {
		return true
	}
	if numberedHeadingRe.MatchString(line) {
		return true
	}
	if labelHeadingRe.MatchString(line) {
		return true
	}
	return isTitleCase(line)
}

// Minor words allowed lowercase inside a title-case heading.
var titleMinorWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "on": true, "to": true, "for": true, "with": true, "vs": true,
}

// isTitleCase reports whether a short line reads like "Getting Started With
// Widgets": every word capitalized (minor words excepted), no terminal
// punctuation.
func isTitleCase(line string) bool {
	if strings.ContainsAny(line[len(line)-1:], ".!?,;") {
		return false
	}
	fields := strings.Fields(line)
	if len(fields) < 1 || len(fields) > 8 {
		return false
	}
	for i, f := range fields {
		r, _ := utf8.DecodeRuneInString(f)
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			continue
		}
		if i > 0 && titleMinorWords[strings.ToLower(f)] {
			continue
		}
		return false
	}
	return true
}

// isAllCaps reports whether the line has at least one letter and no lowercase.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// splitSentences does basic sentence splitting on terminal punctuation
// followed by a space.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
