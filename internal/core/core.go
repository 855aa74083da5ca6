package core

import (
	"context"
	"io"
)

// ScoredOutput is one candidate completion for a prompt together with its score.
type ScoredOutput struct {
	Score  float64 `json:"score"`
	Output string  `json:"output"`
}

// LanguageModel runs inference on a batch of prompts and returns one slice of
// scored outputs per prompt, in prompt order.
type LanguageModel interface {
	Infer(ctx context.Context, prompts []string) ([][]ScoredOutput, error)
}

// DocumentConverter turns a PDF byte stream into plain text.
type DocumentConverter interface {
	ConvertPDF(ctx context.Context, r io.Reader) (string, error)
}

// ObjectFetcher downloads a stored object, e.g. from S3.
type ObjectFetcher interface {
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
}
