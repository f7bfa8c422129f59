package export

import (
	"bytes"
	"testing"

	"github.com/snapreads/studypack/internal/document"
	"github.com/snapreads/studypack/internal/pack"
)

func samplePack() *pack.StudyPack {
	return &pack.StudyPack{
		Outline: []pack.OutlineItem{
			{Title: "Introduction", PageNumber: 1, ReadingMinutes: 2.5},
			{Title: "Methods", PageNumber: 3, ReadingMinutes: 4.0},
		},
		CondensedContent: []document.Chunk{
			{
				Text:           "The study examined reading comprehension under time pressure.",
				PageNumber:     1,
				WordCount:      9,
				ReadingMinutes: 0.04,
				Headings:       []string{"Introduction"},
			},
		},
		KeyPoints: []pack.KeyPoint{
			{Point: "Time pressure reduced recall accuracy.", Category: pack.CategoryImportant},
			{Point: "However, results varied by age group.", Category: pack.CategoryWarning},
		},
		Quiz: []pack.QuizQuestion{{
			Question:      "What did the study examine?",
			Options:       []string{"Reading", "Writing", "Listening", "Speaking"},
			CorrectAnswer: "Reading",
			Explanation:   "The study focused on reading comprehension.",
		}},
		TotalMinutes:     6.5,
		TotalWords:       1600,
		OriginalFilename: "study.pdf",
		ProcessingNotes:  []string{"Processed for a 10 minute reading time."},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	data, err := Render(samplePack())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %.8q", data)
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestRenderMinimalPack(t *testing.T) {
	p := &pack.StudyPack{
		Outline:          []pack.OutlineItem{{Title: "Doc", PageNumber: 1, ReadingMinutes: 1}},
		CondensedContent: []document.Chunk{{Text: "Short text.", PageNumber: 1, WordCount: 2}},
		KeyPoints:        []pack.KeyPoint{},
		Quiz:             []pack.QuizQuestion{},
		OriginalFilename: "short.txt",
		ProcessingNotes:  []string{},
	}
	data, err := Render(p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"notes.pdf", "notes-study-pack.pdf"},
		{"thesis.docx", "thesis-study-pack.pdf"},
		{"", "study-pack.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.in); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
