package extraction

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/tijoseymathew/langextract-docling/internal/chunker"
	"github.com/tijoseymathew/langextract-docling/internal/models"
	"github.com/tijoseymathew/langextract-docling/internal/provider"
	"github.com/tijoseymathew/langextract-docling/internal/resolver"
)

const defaultMaxCharBuffer = 8000

// Request carries one extraction call. Input is an input reference: inline
// text, a local PDF path, or a PDF URL; the resolver decides which.
type Request struct {
	Input             string               `json:"input"`
	ModelID           string               `json:"model_id"`
	PromptDescription string               `json:"prompt_description"`
	Examples          []models.ExampleData `json:"examples,omitempty"`
	MaxCharBuffer     int                  `json:"max_char_buffer,omitempty"`

	// ExtractionPasses reruns inference over every chunk; later passes only
	// contribute extractions not already found. Values <= 1 mean one pass.
	ExtractionPasses int `json:"extraction_passes,omitempty"`

	// APIKey overrides the environment credential for this call.
	APIKey string `json:"-"`
}

// Engine resolves an input reference to text and runs it through the provider
// matched by the request's model id.
type Engine struct {
	resolver *resolver.Resolver

	// Lookup finds the provider factory for a model id. Defaults to the
	// package registry; tests swap it for fakes.
	Lookup func(modelID string) (provider.Factory, error)

	maxCharBuffer int
}

func NewEngine(res *resolver.Resolver, maxCharBuffer int) *Engine {
	if maxCharBuffer <= 0 {
		maxCharBuffer = defaultMaxCharBuffer
	}
	return &Engine{
		resolver:      res,
		Lookup:        provider.Lookup,
		maxCharBuffer: maxCharBuffer,
	}
}

// Extract resolves req.Input, chunks the resolved text, runs one prompt per
// chunk through the provider and merges the parsed extractions into a single
// annotated document. Any failure terminates the call; nothing is retried.
func (e *Engine) Extract(ctx context.Context, req *Request) (*models.AnnotatedDocument, error) {
	if req.ModelID == "" {
		return nil, fmt.Errorf("model id is required")
	}

	factory, err := e.Lookup(req.ModelID)
	if err != nil {
		return nil, err
	}

	text, err := e.resolver.Resolve(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	model, err := factory(ctx, req.ModelID, req.APIKey)
	if err != nil {
		return nil, err
	}
	if closer, ok := model.(io.Closer); ok {
		defer closer.Close()
	}

	maxChars := req.MaxCharBuffer
	if maxChars <= 0 {
		maxChars = e.maxCharBuffer
	}
	chunks := chunker.Split(text, maxChars)

	prompts := make([]string, len(chunks))
	for i, ch := range chunks {
		prompts[i] = buildPrompt(req.PromptDescription, req.Examples, ch)
	}
	passes := req.ExtractionPasses
	if passes <= 0 {
		passes = 1
	}
	log.Printf("extracting document: model=%s chunks=%d passes=%d chars=%d", req.ModelID, len(chunks), passes, len(text))

	var extractions []models.Extraction
	seen := map[string]bool{}
	for pass := 0; pass < passes; pass++ {
		outputs, err := model.Infer(ctx, prompts)
		if err != nil {
			return nil, fmt.Errorf("inference with %q: %w", req.ModelID, err)
		}
		if len(outputs) != len(prompts) {
			return nil, fmt.Errorf("inference with %q: got %d outputs for %d prompts", req.ModelID, len(outputs), len(prompts))
		}

		for i, scored := range outputs {
			if len(scored) == 0 {
				continue
			}
			parsed, err := parseExtractions(scored[0].Output)
			if err != nil {
				return nil, fmt.Errorf("parse model output for chunk %d: %w", i, err)
			}
			for _, ex := range parsed {
				key := ex.ExtractionClass + "\x00" + ex.ExtractionText
				if pass > 0 && seen[key] {
					continue
				}
				seen[key] = true
				extractions = append(extractions, ex)
			}
		}
	}

	return &models.AnnotatedDocument{
		DocumentID:  uuid.NewString(),
		Text:        text,
		Extractions: extractions,
	}, nil
}
