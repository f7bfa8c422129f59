// Package llm wraps the OpenAI chat-completions API behind the narrow
// capability interfaces the pipeline consumes: text summarization, key-point
// paraphrase, and quiz generation. Every call is bounded by the configured
// timeout and is best-effort; callers fall back locally on error.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/snapreads/studypack/internal/pack"
)

// Config holds client settings.
type Config struct {
	APIKey  string
	BaseURL string // optional override for self-hosted gateways
	Model   string
	Timeout time.Duration
}

// Client calls the OpenAI API.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	stats   *Stats
}

// New builds a client. The caller has already verified the API key is set.
func New(cfg Config) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		api:     openai.NewClientWithConfig(oc),
		model:   cfg.Model,
		timeout: timeout,
		stats:   NewStats(time.Hour),
	}
}

// Stats exposes the rolling latency tracker for the stats endpoint.
func (c *Client) Stats() *Stats { return c.stats }

// complete runs one chat completion and records its latency.
func (c *Client) complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	c.stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion from model %s", c.model)
	}
	return resp.Choices[0].Message.Content, nil
}

// Summarize rewrites text into roughly targetWords words.
func (c *Client) Summarize(ctx context.Context, text string, targetWords int) (string, error) {
	out, err := c.complete(ctx,
		summarizeSystemPrompt,
		buildSummarizePrompt(text, targetWords),
		summaryMaxTokens(targetWords),
		0.3)
	if err != nil {
		return "", err
	}
	return stripCodeBlock(out), nil
}

// Paraphrase rewrites each sentence as a concise standalone takeaway. The
// result has the same length and order as the input; anything else is an
// error so the caller can fall back to the originals.
func (c *Client) Paraphrase(ctx context.Context, sentences []string) ([]string, error) {
	out, err := c.complete(ctx, paraphraseSystemPrompt, buildParaphrasePrompt(sentences), 800, 0.2)
	if err != nil {
		return nil, err
	}
	var points []string
	if err := json.Unmarshal([]byte(stripCodeBlock(out)), &points); err != nil {
		return nil, fmt.Errorf("parse paraphrase json: %w (raw: %s)", err, truncate(out, 200))
	}
	if len(points) != len(sentences) {
		return nil, fmt.Errorf("paraphrase returned %d items for %d inputs", len(points), len(sentences))
	}
	return points, nil
}

// GenerateQuiz builds n multiple-choice questions from the supplied text.
func (c *Client) GenerateQuiz(ctx context.Context, text string, n int) ([]pack.QuizQuestion, error) {
	out, err := c.complete(ctx, quizSystemPrompt, buildQuizPrompt(text, n), 1200, 0.3)
	if err != nil {
		return nil, err
	}
	var questions []pack.QuizQuestion
	if err := json.Unmarshal([]byte(stripCodeBlock(out)), &questions); err != nil {
		return nil, fmt.Errorf("parse quiz json: %w (raw: %s)", err, truncate(out, 200))
	}
	valid := questions[:0]
	for i := range questions {
		if ValidateQuestion(&questions[i]) {
			valid = append(valid, questions[i])
		}
	}
	return valid, nil
}

// summaryMaxTokens sizes the completion budget for a word target.
func summaryMaxTokens(targetWords int) int {
	// Roughly 1.33 tokens per English word, plus headroom.
	n := int(float64(targetWords)*1.33) + 100
	if n < 200 {
		n = 200
	}
	if n > 4096 {
		n = 4096
	}
	return n
}
