package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/snapreads/studypack/internal/document"
)

// TextParser handles plain text files. The whole file becomes a single page;
// the chunker finds its own section boundaries from the line structure.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, &ExtractionError{Reason: ReasonCorrupt, Err: err}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, &ExtractionError{Reason: ReasonNoText}
	}

	return &document.Document{
		Title: stripExt(filename),
		Pages: []document.Page{{Number: 1, Text: text}},
	}, nil
}
