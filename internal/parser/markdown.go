package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/snapreads/studypack/internal/document"
)

// MarkdownParser handles Markdown files using goldmark. Each heading starts a
// new page, with the heading as the page's first line; page boundaries act as
// soft section breaks downstream.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &ExtractionError{Reason: ReasonCorrupt, Err: err}
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	doc := &document.Document{Title: stripExt(filename)}

	var current strings.Builder
	flush := func() {
		t := strings.TrimSpace(current.String())
		if t != "" {
			doc.Pages = append(doc.Pages, document.Page{
				Number: len(doc.Pages) + 1,
				Text:   t,
			})
		}
		current.Reset()
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flush()
			title := string(node.Text(src))
			if node.Level == 1 && len(doc.Pages) == 0 && current.Len() == 0 {
				doc.Title = title
			}
			current.WriteString(title)
			current.WriteString("\n")
		default:
			t := blockText(n, src)
			if t != "" {
				if current.Len() > 0 {
					current.WriteString("\n")
				}
				current.WriteString(t)
			}
		}
	}
	flush()

	if len(doc.Pages) == 0 {
		return nil, &ExtractionError{Reason: ReasonNoText}
	}
	return doc, nil
}

// blockText gets the text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
