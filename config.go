package docchat

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/avernet/docchat/llm"
)

// Config holds all configuration for the docchat engine.
type Config struct {
	// LLM configures the chat completion backend.
	LLM llm.Config `json:"llm" yaml:"llm"`

	// MaxContextLength is the character budget for the document-content
	// portion of the assembled context.
	MaxContextLength int `json:"max_context_length" yaml:"max_context_length"`

	// DefaultQuery is used when a document is submitted without a question.
	DefaultQuery string `json:"default_query" yaml:"default_query"`

	// Chunking
	ChunkSize    int `json:"chunk_size" yaml:"chunk_size"`
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`

	// HistoryDBPath is the full path to the SQLite chat-history database.
	// If empty, defaults to ~/.docchat/history.db.
	HistoryDBPath string `json:"history_db_path" yaml:"history_db_path"`
}

// DefaultConfig returns a Config with sensible defaults for the hosted
// Together backend.
func DefaultConfig() Config {
	return Config{
		LLM: llm.Config{
			Provider: "together",
			Model:    "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free",
		},
		MaxContextLength: 8000,
		DefaultQuery:     "Provide a detailed summary of this research paper.",
		ChunkSize:        1500,
		ChunkOverlap:     200,
	}
}

// FromEnv returns DefaultConfig overridden by DOCCHAT_* environment
// variables. TOGETHER_API_KEY is honored as a fallback for the API key.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DOCCHAT_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("DOCCHAT_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("DOCCHAT_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("DOCCHAT_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	} else if v := os.Getenv("TOGETHER_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("DOCCHAT_MAX_CONTEXT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxContextLength = n
		}
	}
	if v := os.Getenv("DOCCHAT_DEFAULT_QUERY"); v != "" {
		cfg.DefaultQuery = v
	}
	if v := os.Getenv("DOCCHAT_HISTORY_DB"); v != "" {
		cfg.HistoryDBPath = v
	}

	return cfg
}

// HistoryPath computes the final chat-history database path.
func (c *Config) HistoryPath() string {
	if c.HistoryDBPath != "" {
		return c.HistoryDBPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db" // fallback to cwd
	}
	return filepath.Join(home, ".docchat", "history.db")
}
