package provider

import (
	"context"
	"testing"

	"github.com/tijoseymathew/langextract-docling/internal/core"
)

type stubModel struct {
	name string
}

func (s *stubModel) Infer(ctx context.Context, prompts []string) ([][]core.ScoredOutput, error) {
	out := make([][]core.ScoredOutput, len(prompts))
	for i := range prompts {
		out[i] = []core.ScoredOutput{{Score: 1.0, Output: s.name}}
	}
	return out, nil
}

func stubFactory(name string) Factory {
	return func(ctx context.Context, modelID, apiKey string) (core.LanguageModel, error) {
		return &stubModel{name: name}, nil
	}
}

// modelName constructs via the factory and reads back the stub marker.
func modelName(t *testing.T, f Factory) string {
	t.Helper()
	m, err := f(context.Background(), "x", "")
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	stub, ok := m.(*stubModel)
	if !ok {
		t.Fatalf("expected a stub model, got %T", m)
	}
	return stub.name
}

func TestLookupUnknownModelID(t *testing.T) {
	if _, err := Lookup("no-such-provider-xyz"); err == nil {
		t.Fatal("expected an error for an unregistered model id")
	}
}

func TestLookupMatchesPattern(t *testing.T) {
	Register(`^regtest-alpha`, 1, stubFactory("alpha"))

	f, err := Lookup("regtest-alpha-3b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := modelName(t, f); got != "alpha" {
		t.Errorf("expected the alpha factory, got %q", got)
	}
}

func TestLookupPrefersHigherPriority(t *testing.T) {
	Register(`^regtest-beta`, 1, stubFactory("generic"))
	Register(`^regtest-beta-pro`, 5, stubFactory("pro"))

	f, err := Lookup("regtest-beta-pro-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := modelName(t, f); got != "pro" {
		t.Errorf("expected the higher-priority factory, got %q", got)
	}

	f, err = Lookup("regtest-beta-lite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := modelName(t, f); got != "generic" {
		t.Errorf("expected the generic factory, got %q", got)
	}
}

func TestDoclingRegisteredAtInit(t *testing.T) {
	for _, id := range []string{"docling", "docling-gemini-2.0-flash"} {
		if _, err := Lookup(id); err != nil {
			t.Errorf("expected %q to resolve to the docling provider: %v", id, err)
		}
	}
}

func TestBackendModelMapping(t *testing.T) {
	testCases := []struct {
		modelID string
		want    string
	}{
		{"docling", defaultBackendModel},
		{"docling-gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tc := range testCases {
		if got := backendModel(tc.modelID); got != tc.want {
			t.Errorf("backendModel(%q) = %q, want %q", tc.modelID, got, tc.want)
		}
	}
}
