package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	BookchatAPIKey string

	// Text generation
	AnthropicAPIKey string
	AnthropicModel  string

	// Segmentation
	TOCPrefixBytes    int
	MergeWindowLines  int
	FilterMinGapLines int

	// Analysis
	AnalysisMaxRetries int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Library browsing (optional)
	LibraryPath string

	// Review output directory (optional; empty disables file output)
	OutputDir string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		BookchatAPIKey: os.Getenv("BOOKCHAT_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		TOCPrefixBytes:    envInt("TOC_PREFIX_BYTES", 5000),
		MergeWindowLines:  envInt("MERGE_WINDOW_LINES", 10),
		FilterMinGapLines: envInt("FILTER_MIN_GAP_LINES", 20),

		AnalysisMaxRetries: envInt("ANALYSIS_MAX_RETRIES", 5),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 20),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 24*time.Hour),

		LibraryPath: os.Getenv("LIBRARY_PATH"),
		OutputDir:   os.Getenv("OUTPUT_DIR"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.TOCPrefixBytes <= 0 {
		cfg.TOCPrefixBytes = 5000
	}
	if cfg.MergeWindowLines <= 0 {
		cfg.MergeWindowLines = 10
	}
	if cfg.FilterMinGapLines <= 0 {
		cfg.FilterMinGapLines = 20
	}
	if cfg.AnalysisMaxRetries <= 0 {
		cfg.AnalysisMaxRetries = 5
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 20
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 24 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.BookchatAPIKey == "" {
		return fmt.Errorf("BOOKCHAT_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return nil
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
