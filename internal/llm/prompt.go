package llm

import (
	"fmt"
	"strings"
)

const summarizeSystemPrompt = `You are a helpful assistant that condenses academic and technical text for students. Preserve the main ideas, key terms, and any figures or data. Write plain prose, no preamble, no markdown headers.`

const paraphraseSystemPrompt = `You are an expert at writing key takeaways for study material. Rewrite each given sentence as one concise, self-contained takeaway. Respond with ONLY a JSON array of strings, same length and order as the input, no other text.`

const quizSystemPrompt = `You are an expert at writing educational quiz questions. Each question has exactly 4 options and the correct answer must be one of them verbatim. Respond with ONLY valid JSON, no other text.`

func buildSummarizePrompt(text string, targetWords int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Condense the following text to at most %d words while keeping the main ideas and key concepts:\n\n", targetWords)
	sb.WriteString(text)
	return sb.String()
}

func buildParaphrasePrompt(sentences []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rewrite each of these %d sentences as a concise takeaway a student should remember:\n", len(sentences))
	for i, s := range sentences {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
	}
	sb.WriteString("\nReturn as JSON array: [\"takeaway 1\", \"takeaway 2\", ...]")
	return sb.String()
}

func buildQuizPrompt(text string, n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create %d multiple choice questions based on this study material:\n\n", n)
	sb.WriteString(text)
	sb.WriteString(`

Return as JSON:
[
  {
    "question": "Question text?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_answer": "Option A",
    "explanation": "Why this is correct"
  }
]`)
	return sb.String()
}
