// Package export renders a stored study pack as a downloadable PDF.
package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/snapreads/studypack/internal/pack"
)

// Filename derives the download filename from the pack's original upload.
func Filename(originalFilename string) string {
	base := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	if base == "" {
		return "study-pack.pdf"
	}
	return base + "-study-pack.pdf"
}

// Render lays the pack out as a printable PDF: title page, outline, key
// takeaways, condensed content, quiz, and processing notes.
func Render(p *pack.StudyPack) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(19, 19, 19)
	pdf.SetAutoPageBreak(true, 19)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := strings.TrimSuffix(p.OriginalFilename, filepath.Ext(p.OriginalFilename))

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(title+" - Study Pack"), "", "C", false)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, tr(fmt.Sprintf("Reading time: %.0f minutes", p.TotalMinutes)), "", "C", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("Total word count: %d", p.TotalWords)), "", "C", false)

	section := func(name string) {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, tr(name), "", "L", false)
		pdf.Ln(2)
	}
	body := func(text string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(text), "", "L", false)
	}

	section("Outline")
	for i, item := range p.Outline {
		body(fmt.Sprintf("%d. %s (page %d, %.1f min)", i+1, item.Title, item.PageNumber, item.ReadingMinutes))
	}

	if len(p.KeyPoints) > 0 {
		section("Key Takeaways")
		for _, kp := range p.KeyPoints {
			prefix := "- "
			if kp.Category != pack.CategoryNormal {
				prefix = fmt.Sprintf("- [%s] ", kp.Category)
			}
			body(prefix + kp.Point)
		}
	}

	section("Summary")
	for _, c := range p.CondensedContent {
		for _, h := range c.Headings {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 7, tr(h), "", "L", false)
		}
		body(c.Text)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Page %d, %d words, %.1f min read",
			c.PageNumber, c.WordCount, c.ReadingMinutes)), "", "L", false)
		pdf.Ln(4)
	}

	if len(p.Quiz) > 0 {
		section("Quiz Questions")
		for i, q := range p.Quiz {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("Question %d: %s", i+1, q.Question)), "", "L", false)
			for j, opt := range q.Options {
				body(fmt.Sprintf("   %d. %s", j+1, opt))
			}
			body("Correct answer: " + q.CorrectAnswer)
			if q.Explanation != "" {
				body("Explanation: " + q.Explanation)
			}
			pdf.Ln(3)
		}
	}

	if len(p.ProcessingNotes) > 0 {
		section("Processing Notes")
		for _, n := range p.ProcessingNotes {
			body("- " + n)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
