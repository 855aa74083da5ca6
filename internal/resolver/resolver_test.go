package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeConverter records what it was asked to convert and returns canned output.
type fakeConverter struct {
	got  []byte
	text string
	err  error
}

func (f *fakeConverter) ConvertPDF(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.got = data
	return f.text, f.err
}

type fakeObjects struct {
	bucket, key string
	data        []byte
	err         error
}

func (f *fakeObjects) GetFile(ctx context.Context, bucket, key string) ([]byte, error) {
	f.bucket, f.key = bucket, key
	return f.data, f.err
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Kind
	}{
		{"InlineText", "Patient was prescribed 20mg of lisinopril.", KindText},
		{"EmptyString", "", KindText},
		{"URLWithoutPDF", "https://example.com/report.html", KindText},
		{"RemotePDF", "https://example.com/files/report.pdf", KindRemotePDF},
		{"RemotePDFUppercase", "https://example.com/files/REPORT.PDF", KindRemotePDF},
		{"HTTPRemotePDF", "http://example.com/a.pdf", KindRemotePDF},
		{"ObjectPDF", "s3://my-bucket/reports/q3.pdf", KindObjectPDF},
		{"ObjectNonPDF", "s3://my-bucket/reports/q3.csv", KindText},
		{"LocalPDF", "/tmp/some/report.pdf", KindLocalPDF},
		{"RelativeLocalPDF", "report.pdf", KindLocalPDF},
		{"TextMentioningPDFMidway", "the file report.pdf is attached below", KindText},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.input); got != tc.want {
				t.Errorf("Classify(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestResolveInlineTextPassthrough(t *testing.T) {
	res := New(&fakeConverter{}, nil)
	input := "Juan went to the market and bought three apples."

	first, err := res.Resolve(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != input {
		t.Errorf("expected passthrough, got %q", first)
	}

	// Same input twice yields the identical output.
	second, err := res.Resolve(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("resolve is not idempotent: %q vs %q", first, second)
	}
}

func TestResolveLocalPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.pdf")
	content := []byte("%PDF-1.4 fake body")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	conv := &fakeConverter{text: "converted text"}
	res := New(conv, nil)

	got, err := res.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "converted text" {
		t.Errorf("expected converted text, got %q", got)
	}
	if string(conv.got) != string(content) {
		t.Errorf("converter did not receive the file bytes")
	}
}

func TestResolveLocalPDFMissing(t *testing.T) {
	res := New(&fakeConverter{text: "unused"}, nil)

	_, err := res.Resolve(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	if err == nil {
		t.Fatal("expected an error for a nonexistent pdf path")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestResolveRemotePDF(t *testing.T) {
	fetched := 0
	body := []byte("%PDF-1.4 remote fixture")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched++
		w.Write(body)
	}))
	defer ts.Close()

	conv := &fakeConverter{text: "remote converted"}
	res := New(conv, nil)

	got, err := res.Resolve(context.Background(), ts.URL+"/doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched != 1 {
		t.Errorf("expected exactly one fetch, got %d", fetched)
	}
	if got != "remote converted" {
		t.Errorf("expected converted text, got %q", got)
	}
	if string(conv.got) != string(body) {
		t.Errorf("converter did not receive the fetched bytes")
	}
}

func TestResolveRemoteFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	res := New(&fakeConverter{text: "unused"}, nil)

	_, err := res.Resolve(context.Background(), ts.URL+"/doc.pdf")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected the status code in the error, got %v", err)
	}
}

func TestResolveConversionError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv := &fakeConverter{err: fmt.Errorf("malformed xref")}
	res := New(conv, nil)

	_, err := res.Resolve(context.Background(), path)
	if !errors.Is(err, ErrConvert) {
		t.Errorf("expected ErrConvert, got %v", err)
	}
}

func TestResolveEmptyConversionIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := New(&fakeConverter{text: "   \n"}, nil)

	_, err := res.Resolve(context.Background(), path)
	if !errors.Is(err, ErrConvert) {
		t.Errorf("expected ErrConvert for empty conversion output, got %v", err)
	}
}

func TestResolveObjectPDF(t *testing.T) {
	objects := &fakeObjects{data: []byte("%PDF-1.4 s3 fixture")}
	conv := &fakeConverter{text: "s3 converted"}
	res := New(conv, objects)

	got, err := res.Resolve(context.Background(), "s3://my-bucket/reports/q3.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "s3 converted" {
		t.Errorf("expected converted text, got %q", got)
	}
	if objects.bucket != "my-bucket" || objects.key != "reports/q3.pdf" {
		t.Errorf("unexpected bucket/key: %q %q", objects.bucket, objects.key)
	}
}

func TestResolveObjectPDFWithoutClient(t *testing.T) {
	res := New(&fakeConverter{text: "unused"}, nil)

	_, err := res.Resolve(context.Background(), "s3://my-bucket/reports/q3.pdf")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch when no object client is configured, got %v", err)
	}
}
