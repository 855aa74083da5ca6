package resolver

import (
	"context"
	"io"
	"strings"

	"code.sajari.com/docconv"

	"github.com/tijoseymathew/langextract-docling/internal/core"
)

var _ core.DocumentConverter = (*DocconvConverter)(nil)

// DocconvConverter implements core.DocumentConverter using sajari/docconv.
type DocconvConverter struct {
	useReadability bool
}

func NewDocconvConverter(useReadability bool) *DocconvConverter {
	return &DocconvConverter{useReadability: useReadability}
}

// ConvertPDF runs docconv's default PDF conversion and returns the text body.
func (c *DocconvConverter) ConvertPDF(ctx context.Context, r io.Reader) (string, error) {
	res, err := docconv.Convert(r, "application/pdf", c.useReadability)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Body), nil
}
