// Package pack assembles the final study pack delivered to the client.
package pack

import (
	"context"

	"github.com/snapreads/studypack/internal/document"
)

// Key point categories.
const (
	CategoryNormal    = "normal"
	CategoryImportant = "important"
	CategoryWarning   = "warning"
)

// OutlineItem is one section entry in the pack outline.
type OutlineItem struct {
	Title          string  `json:"title"`
	PageNumber     int     `json:"page_number"`
	ReadingMinutes float64 `json:"reading_time_minutes"`
}

// KeyPoint is one takeaway with its display category.
type KeyPoint struct {
	Point    string `json:"point"`
	Category string `json:"category"`
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// StudyPack is the immutable final output of one pipeline run. This is the
// only artifact that crosses the boundary to persistence and to the client.
type StudyPack struct {
	Outline          []OutlineItem    `json:"outline"`
	CondensedContent []document.Chunk `json:"condensed_content"`
	KeyPoints        []KeyPoint       `json:"key_points"`
	TotalMinutes     float64          `json:"total_reading_time_minutes"`
	TotalWords       int              `json:"total_word_count"`
	Quiz             []QuizQuestion   `json:"quiz"`
	OriginalFilename string           `json:"original_filename"`
	ProcessingNotes  []string         `json:"processing_notes"`
}

// Capabilities are the plan-tier flags decided by the caller's policy layer
// before the pipeline is invoked. The assembler owns no billing logic.
type Capabilities struct {
	AllowKeyPoints   bool
	AllowQuiz        bool
	AllowLLMCondense bool
}

// QuizGenerator produces multiple-choice questions from study text.
// Best-effort: on error the pack ships with an empty quiz.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, text string, n int) ([]QuizQuestion, error)
}

// Paraphraser rewrites candidate takeaway sentences. Best-effort: on error
// the locally derived sentences are used as-is.
type Paraphraser interface {
	Paraphrase(ctx context.Context, sentences []string) ([]string, error)
}
