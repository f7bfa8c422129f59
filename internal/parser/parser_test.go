package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"report.pdf", false},
		{"notes.TXT", false},
		{"readme.md", false},
		{"page.html", false},
		{"page.htm", false},
		{"thesis.docx", false},
		{"archive.zip", true},
		{"noextension", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("a.pdf") || !IsSupportedExtension("b.DOCX") {
		t.Error("supported extensions rejected")
	}
	if IsSupportedExtension("c.exe") || IsSupportedExtension("d") {
		t.Error("unsupported extensions accepted")
	}
}

func TestTextParser(t *testing.T) {
	var p TextParser
	doc, err := p.Parse(strings.NewReader("First line.\nSecond line.\n"), "notes.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title != "notes" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Number != 1 {
		t.Fatalf("pages = %+v", doc.Pages)
	}
	if !strings.Contains(doc.Pages[0].Text, "Second line.") {
		t.Errorf("text = %q", doc.Pages[0].Text)
	}
}

func TestTextParserEmptyFile(t *testing.T) {
	var p TextParser
	_, err := p.Parse(strings.NewReader("  \n \n"), "empty.txt")

	var extErr *ExtractionError
	if !errors.As(err, &extErr) || extErr.Reason != ReasonNoText {
		t.Errorf("expected no_text extraction error, got %v", err)
	}
}

func TestMarkdownParserSectionsBecomePages(t *testing.T) {
	src := "# My Title\n\nIntro paragraph text.\n\n## Setup\n\nSetup paragraph text.\n\n## Usage\n\nUsage paragraph text.\n"
	var p MarkdownParser
	doc, err := p.Parse(strings.NewReader(src), "guide.md")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title != "My Title" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("got %d pages, want 3: %+v", len(doc.Pages), doc.Pages)
	}
	// Each section page leads with its heading so the chunker re-detects it.
	if !strings.HasPrefix(doc.Pages[1].Text, "Setup\n") {
		t.Errorf("page 2 = %q", doc.Pages[1].Text)
	}
	if !strings.Contains(doc.Pages[2].Text, "Usage paragraph text.") {
		t.Errorf("page 3 = %q", doc.Pages[2].Text)
	}
}

func TestMarkdownParserEmpty(t *testing.T) {
	var p MarkdownParser
	_, err := p.Parse(strings.NewReader(""), "empty.md")

	var extErr *ExtractionError
	if !errors.As(err, &extErr) || extErr.Reason != ReasonNoText {
		t.Errorf("expected no_text extraction error, got %v", err)
	}
}

func TestExtractionErrorMessages(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{ReasonEncrypted, "password-protected"},
		{ReasonNoText, "No readable text"},
		{ReasonCorrupt, "could not be read"},
	}
	for _, tt := range tests {
		e := &ExtractionError{Reason: tt.reason}
		if !strings.Contains(e.Message(), tt.want) {
			t.Errorf("Message(%s) = %q, want substring %q", tt.reason, e.Message(), tt.want)
		}
	}
}
