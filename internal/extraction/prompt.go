package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tijoseymathew/langextract-docling/internal/chunker"
	"github.com/tijoseymathew/langextract-docling/internal/models"
)

// buildPrompt assembles the prompt for one chunk: task description, rendered
// few-shot examples, then the chunk text prefixed with its heading trail.
func buildPrompt(description string, examples []models.ExampleData, ch chunker.Chunk) string {
	var sb strings.Builder

	sb.WriteString(description)
	sb.WriteString("\n\nRespond with a JSON array of extractions. Each extraction has")
	sb.WriteString(" \"extraction_class\", \"extraction_text\" and optional \"attributes\".\n")

	for _, ex := range examples {
		rendered, err := json.Marshal(ex.Extractions)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "\nExample input:\n%s\nExample output:\n%s\n", ex.Text, rendered)
	}

	sb.WriteString("\nInput:\n")
	if len(ch.Headings) > 0 {
		fmt.Fprintf(&sb, "[section: %s]\n", strings.Join(ch.Headings, " > "))
	}
	sb.WriteString(ch.Text)
	sb.WriteString("\nOutput:\n")

	return sb.String()
}

// parseExtractions decodes the model's answer. Accepts a bare JSON array or a
// {"extractions": [...]} object, optionally wrapped in a fenced code block.
func parseExtractions(output string) ([]models.Extraction, error) {
	s := stripFences(output)
	if s == "" {
		return nil, nil
	}

	var arr []models.Extraction
	if err := json.Unmarshal([]byte(s), &arr); err == nil {
		return arr, nil
	}

	var obj struct {
		Extractions []models.Extraction `json:"extractions"`
	}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("not valid extraction JSON: %w", err)
	}
	return obj.Extractions, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
