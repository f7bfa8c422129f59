package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/snapreads/studypack/internal/chunker"
	"github.com/snapreads/studypack/internal/condenser"
	"github.com/snapreads/studypack/internal/llm"
	"github.com/snapreads/studypack/internal/pack"
	"github.com/snapreads/studypack/internal/scorer"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	LLMTimeout    time.Duration

	// Storage
	DBPath string

	// Upload limits
	MaxUploadBytes int64

	// Reading model
	WordsPerMinute int

	// Chunking
	ChunkMinWords      int
	ChunkMaxWords      int
	HeadingAttachWords int

	// Scoring
	KeywordsPerChunk int
	Weights          scorer.Weights

	// Condensation
	CondenseBudgetFraction float64
	CondenseMinMinutes     float64
	MaxSummaryInputChars   int
	MaxConcurrentCondense  int

	// Assembly
	KeyPointCount      int
	ImportantThreshold float64
	QuizQuestions      int
}

func Load() Config {
	w := scorer.DefaultWeights()
	return Config{
		Port: envOr("PORT", "8080"),

		APIKey: os.Getenv("STUDYPACK_API_KEY"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
		LLMTimeout:    envDuration("LLM_TIMEOUT", 60*time.Second),

		DBPath: envOr("DB_PATH", "studypack.db"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 26214400), // 25MB

		WordsPerMinute: envInt("READING_WPM", 250),

		ChunkMinWords:      envInt("CHUNK_MIN_WORDS", 500),
		ChunkMaxWords:      envInt("CHUNK_MAX_WORDS", 700),
		HeadingAttachWords: envInt("HEADING_ATTACH_WORDS", 50),

		KeywordsPerChunk: envInt("KEYWORDS_PER_CHUNK", 8),
		Weights: scorer.Weights{
			HeadingBonus:    envFloat("SCORE_HEADING_BONUS", w.HeadingBonus),
			KeywordWeight:   envFloat("SCORE_KEYWORD_WEIGHT", w.KeywordWeight),
			NumericPerMatch: envFloat("SCORE_NUMERIC_PER_MATCH", w.NumericPerMatch),
			NumericCap:      envFloat("SCORE_NUMERIC_CAP", w.NumericCap),
			ShapeBonus:      envFloat("SCORE_SHAPE_BONUS", w.ShapeBonus),
			ShapePenalty:    envFloat("SCORE_SHAPE_PENALTY", w.ShapePenalty),
			Floor:           envFloat("SCORE_FLOOR", w.Floor),
		},

		CondenseBudgetFraction: envFloat("CONDENSE_BUDGET_FRACTION", 0.25),
		CondenseMinMinutes:     envFloat("CONDENSE_MIN_MINUTES", 5.0),
		MaxSummaryInputChars:   envInt("MAX_SUMMARY_INPUT_CHARS", 12000),
		MaxConcurrentCondense:  envInt("MAX_CONCURRENT_CONDENSE", 3),

		KeyPointCount:      envInt("KEY_POINT_COUNT", 10),
		ImportantThreshold: envFloat("IMPORTANT_THRESHOLD", 0.7),
		QuizQuestions:      envInt("QUIZ_QUESTIONS", 3),
	}
}

// Validate fails fast at startup on broken configuration; per-request code
// never re-checks these.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("STUDYPACK_API_KEY is required")
	}
	if c.WordsPerMinute <= 0 {
		return fmt.Errorf("READING_WPM must be positive")
	}
	if c.ChunkMinWords <= 0 || c.ChunkMaxWords < c.ChunkMinWords {
		return fmt.Errorf("chunk word band invalid: min=%d max=%d", c.ChunkMinWords, c.ChunkMaxWords)
	}
	if c.CondenseBudgetFraction <= 0 || c.CondenseBudgetFraction > 1 {
		return fmt.Errorf("CONDENSE_BUDGET_FRACTION must be in (0,1]")
	}
	if c.Weights.Floor < 0 || c.Weights.Floor > 1 {
		return fmt.Errorf("SCORE_FLOOR must be in [0,1]")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// ChunkerConfig assembles the chunker settings.
func (c Config) ChunkerConfig() chunker.Config {
	return chunker.Config{
		MinWords:           c.ChunkMinWords,
		MaxWords:           c.ChunkMaxWords,
		HeadingAttachWords: c.HeadingAttachWords,
		WordsPerMinute:     c.WordsPerMinute,
	}
}

// ScorerConfig assembles the scorer settings.
func (c Config) ScorerConfig() scorer.Config {
	return scorer.Config{
		Weights:          c.Weights,
		KeywordsPerChunk: c.KeywordsPerChunk,
	}
}

// CondenserConfig assembles the condenser settings.
func (c Config) CondenserConfig() condenser.Config {
	return condenser.Config{
		BudgetFraction:    c.CondenseBudgetFraction,
		MinCeilingMinutes: c.CondenseMinMinutes,
		MaxInputChars:     c.MaxSummaryInputChars,
		CallTimeout:       c.LLMTimeout,
		MaxConcurrent:     c.MaxConcurrentCondense,
		WordsPerMinute:    c.WordsPerMinute,
	}
}

// AssemblerConfig assembles the pack assembler settings.
func (c Config) AssemblerConfig() pack.AssemblerConfig {
	return pack.AssemblerConfig{
		KeyPointCount:      c.KeyPointCount,
		ImportantThreshold: c.ImportantThreshold,
		QuizQuestions:      c.QuizQuestions,
		MaxQuizInputChars:  c.MaxSummaryInputChars,
	}
}

// LLMConfig assembles the OpenAI client settings.
func (c Config) LLMConfig() llm.Config {
	return llm.Config{
		APIKey:  c.OpenAIAPIKey,
		BaseURL: c.OpenAIBaseURL,
		Model:   c.OpenAIModel,
		Timeout: c.LLMTimeout,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
