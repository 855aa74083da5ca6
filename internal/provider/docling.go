package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/tijoseymathew/langextract-docling/internal/core"
)

const (
	// doclingPattern matches the model ids this provider handles.
	doclingPattern  = `^docling`
	doclingPriority = 10

	defaultBackendModel = "gemini-1.5-flash"

	// maxConcurrentPrompts bounds the fan-out of one inference batch.
	maxConcurrentPrompts = 4
)

func init() {
	Register(doclingPattern, doclingPriority, NewDoclingModel)
}

var _ core.LanguageModel = (*DoclingModel)(nil)

// DoclingModel serves docling-prefixed model ids through a Gemini backend.
// "docling" uses the default backend model; "docling-<name>" selects <name>.
type DoclingModel struct {
	client    *genai.Client
	modelName string
}

// NewDoclingModel constructs the provider for one model id. The credential is
// read here, at call time: apiKey if given, else DOCLING_API_KEY, else
// GEMINI_API_KEY.
func NewDoclingModel(ctx context.Context, modelID, apiKey string) (core.LanguageModel, error) {
	if apiKey == "" {
		apiKey = os.Getenv("DOCLING_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("docling provider for %q: %w", modelID, err)
	}
	return &DoclingModel{client: cl, modelName: backendModel(modelID)}, nil
}

func backendModel(modelID string) string {
	name := strings.TrimPrefix(modelID, "docling")
	name = strings.TrimPrefix(name, "-")
	if name == "" {
		return defaultBackendModel
	}
	return name
}

func (m *DoclingModel) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// Infer runs the batch of prompts against the backend, bounded fan-out, one
// []ScoredOutput per prompt in prompt order. The first failure cancels the
// rest of the batch; there are no retries.
func (m *DoclingModel) Infer(ctx context.Context, prompts []string) ([][]core.ScoredOutput, error) {
	out := make([][]core.ScoredOutput, len(prompts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPrompts)
	for i, prompt := range prompts {
		i, prompt := i, prompt
		g.Go(func() error {
			text, err := m.generate(gctx, prompt)
			if err != nil {
				return err
			}
			out[i] = []core.ScoredOutput{{Score: 1.0, Output: text}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *DoclingModel) generate(ctx context.Context, prompt string) (string, error) {
	model := m.client.GenerativeModel(m.modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
