// Package docchat answers natural-language questions about a PDF or DOCX
// document. It loads the document into section-tagged passages, classifies
// the query's intent, assembles a bounded context window, and delegates
// answer generation to an LLM backend — short-circuiting simple metadata
// questions without an LLM call at all.
package docchat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/avernet/docchat/chunker"
	"github.com/avernet/docchat/history"
	"github.com/avernet/docchat/intent"
	"github.com/avernet/docchat/llm"
	"github.com/avernet/docchat/parser"
	"github.com/avernet/docchat/prompt"
)

// metadataShortCircuitGate is the MetadataQuery score above which the
// resolver is consulted before the full pipeline.
const metadataShortCircuitGate = 0.7

// Engine runs the query-processing pipeline. It holds no mutable state:
// concurrent invocations on one Engine are independent.
type Engine struct {
	cfg       Config
	parsers   *parser.Registry
	chunkr    *chunker.Chunker
	assembler *prompt.Assembler
	client    *llm.Client
}

// New creates an Engine from the given configuration.
func New(cfg Config) (*Engine, error) {
	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Engine{
		cfg:     cfg,
		parsers: parser.NewRegistry(),
		chunkr: chunker.New(chunker.Config{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		}),
		assembler: prompt.NewAssembler(cfg.MaxContextLength),
		client:    llm.NewClient(provider, cfg.LLM.Model),
	}, nil
}

// ProcessDocumentQuery answers a query about the document at filePath,
// using chatHistory for conversational continuity. Document-processing
// failures are returned as errors; LLM failures are not — the answer
// string always carries something displayable.
func (e *Engine) ProcessDocumentQuery(ctx context.Context, filePath, query string, chatHistory []history.Entry) (string, error) {
	start := time.Now()

	passages, meta, err := e.loadDocument(ctx, filePath)
	if err != nil {
		return "", err
	}

	scores := intent.Classify(query)

	if scores.MetadataQuery > metadataShortCircuitGate {
		if answer, ok := resolveMetadataQuery(query, meta); ok {
			slog.Info("query: answered from metadata",
				"query", query, "elapsed", time.Since(start).Round(time.Millisecond))
			return answer, nil
		}
	}

	contextText := e.assembler.Assemble(query, passages, meta, scores, chatHistory)
	style := intent.SelectStyle(scores, meta.IsResearch)
	promptText := prompt.Build(query, contextText, style)

	slog.Info("query: calling llm",
		"query", query, "passages", len(passages),
		"context_chars", len(contextText),
		"tone", style.Tone, "structure", style.Structure)

	answer := e.client.Generate(ctx, promptText)

	slog.Info("query: complete",
		"query", query, "elapsed", time.Since(start).Round(time.Millisecond))
	return answer, nil
}

// loadDocument turns a file path into passages and metadata. An empty or
// missing path degrades to no passages and default metadata; everything
// else either succeeds or fails with ErrProcessingFailed.
func (e *Engine) loadDocument(ctx context.Context, filePath string) ([]chunker.Passage, parser.Metadata, error) {
	if filePath == "" {
		return nil, parser.DefaultMetadata(), nil
	}
	if _, err := os.Stat(filePath); err != nil {
		slog.Warn("load: file not accessible, using defaults", "path", filePath, "error", err)
		return nil, parser.DefaultMetadata(), nil
	}

	res, err := e.parsers.ExtractFile(ctx, filePath)
	if err != nil {
		if errors.Is(err, parser.ErrUnknownFormat) {
			return nil, parser.DefaultMetadata(), fmt.Errorf("%w: %w: %v", ErrProcessingFailed, ErrUnsupportedFormat, err)
		}
		return nil, parser.DefaultMetadata(), fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	passages := e.chunkr.Split(res.Text)

	slog.Info("load: document ready",
		"path", filePath, "passages", len(passages),
		"title", res.Metadata.Title, "pages", res.Metadata.TotalPages)

	return passages, res.Metadata, nil
}
