package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/tijoseymathew/langextract-docling/internal/core"
)

var (
	// ErrFetch marks failures retrieving a remote PDF (HTTP or object storage).
	ErrFetch = errors.New("pdf fetch failed")
	// ErrConvert marks failures turning PDF bytes into text, including
	// conversions that produce no text at all.
	ErrConvert = errors.New("pdf conversion failed")
)

// Kind classifies an input reference. Classification is total: every input
// string maps to exactly one kind.
type Kind int

const (
	KindText Kind = iota
	KindLocalPDF
	KindRemotePDF
	KindObjectPDF
)

func (k Kind) String() string {
	switch k {
	case KindLocalPDF:
		return "local_pdf"
	case KindRemotePDF:
		return "remote_pdf"
	case KindObjectPDF:
		return "object_pdf"
	default:
		return "text"
	}
}

// Resolver routes an input reference to the right handling path: PDFs are
// fetched (when remote) and converted to text, everything else passes through
// unchanged. One synchronous call per input, no retries, no caching.
type Resolver struct {
	httpClient *http.Client
	converter  core.DocumentConverter
	objects    core.ObjectFetcher // nil when no object storage is configured
}

// New builds a Resolver. objects may be nil; s3:// inputs then fail with ErrFetch.
func New(converter core.DocumentConverter, objects core.ObjectFetcher) *Resolver {
	return &Resolver{
		httpClient: http.DefaultClient,
		converter:  converter,
		objects:    objects,
	}
}

// Classify maps an input string to its kind, first match wins:
// http(s) URL ending in .pdf, s3 URL ending in .pdf, any other string ending
// in .pdf (treated as a local path), else inline text.
func Classify(input string) Kind {
	if u, err := url.Parse(input); err == nil && u.Host != "" {
		switch u.Scheme {
		case "http", "https":
			if hasPDFExt(u.Path) {
				return KindRemotePDF
			}
			return KindText
		case "s3":
			if hasPDFExt(u.Path) {
				return KindObjectPDF
			}
			return KindText
		}
	}
	if hasPDFExt(input) {
		return KindLocalPDF
	}
	return KindText
}

func hasPDFExt(s string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(s)), ".pdf")
}

// Resolve classifies input and returns its plain text form. Inline text is
// returned unchanged; PDF variants are read, fetched or downloaded and then
// converted. All failures carry the failing input and an error kind
// distinguishable with errors.Is.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	switch Classify(input) {
	case KindRemotePDF:
		return r.resolveRemote(ctx, input)
	case KindObjectPDF:
		return r.resolveObject(ctx, input)
	case KindLocalPDF:
		return r.resolveLocal(ctx, input)
	default:
		return input, nil
	}
}

func (r *Resolver) resolveLocal(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %q: %w", path, err)
	}
	defer f.Close()

	return r.convert(ctx, path, f)
}

func (r *Resolver) resolveRemote(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w: %w", rawURL, ErrFetch, err)
	}
	req.Header.Set("User-Agent", "langextract-docling/1.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w: %w", rawURL, ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %q: %w: server returned status %d", rawURL, ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w: %w", rawURL, ErrFetch, err)
	}

	return r.convert(ctx, rawURL, bytes.NewReader(body))
}

func (r *Resolver) resolveObject(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w: %w", rawURL, ErrFetch, err)
	}
	if r.objects == nil {
		return "", fmt.Errorf("fetch %q: %w: no object storage client configured", rawURL, ErrFetch)
	}

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	data, err := r.objects.GetFile(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w: %w", rawURL, ErrFetch, err)
	}

	return r.convert(ctx, rawURL, bytes.NewReader(data))
}

func (r *Resolver) convert(ctx context.Context, input string, src io.Reader) (string, error) {
	text, err := r.converter.ConvertPDF(ctx, src)
	if err != nil {
		return "", fmt.Errorf("convert %q: %w: %w", input, ErrConvert, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("convert %q: %w: conversion produced no text", input, ErrConvert)
	}
	return text, nil
}
