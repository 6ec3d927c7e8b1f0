package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleResumeText = `John Smith
Software Engineer with eight years of experience building backend services
in Go and Python. Led a team of five engineers delivering payment systems
processing millions of transactions per day.`

type fakePDFParser struct {
	content *PDFContent
	err     error
	delay   time.Duration
}

func (f *fakePDFParser) ExtractText(data []byte) (*PDFContent, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.content, f.err
}

type fakeWordParser struct {
	content *WordContent
	err     error
}

func (f *fakeWordParser) ExtractText(data []byte) (*WordContent, error) {
	return f.content, f.err
}

func newTestExtractor(pdf PDFParserService, word WordParserService, timeout time.Duration) ExtractorService {
	return NewExtractorService(pdf, word, timeout)
}

func TestExtractEmptyBuffer(t *testing.T) {
	extractor := newTestExtractor(&fakePDFParser{}, &fakeWordParser{}, 0)

	_, err := extractor.Extract(context.Background(), nil, MimePDF)
	if !errors.Is(err, ErrNoExtractableText) {
		t.Fatalf("expected ErrNoExtractableText for empty buffer, got %v", err)
	}
}

func TestExtractUnsupportedMimeType(t *testing.T) {
	extractor := newTestExtractor(&fakePDFParser{}, &fakeWordParser{}, 0)

	_, err := extractor.Extract(context.Background(), []byte("data"), "image/png")
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestExtractPDFSuccess(t *testing.T) {
	pdf := &fakePDFParser{content: &PDFContent{Text: sampleResumeText, PageCount: 2}}
	extractor := newTestExtractor(pdf, &fakeWordParser{}, 0)

	result, err := extractor.Extract(context.Background(), []byte("%PDF-1.7 fake"), MimePDF)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if result.PageCount != 2 {
		t.Errorf("expected page count 2, got %d", result.PageCount)
	}
	if result.CharCount != len(result.Text) {
		t.Errorf("char count %d does not match text length %d", result.CharCount, len(result.Text))
	}
	if result.WordCount < 20 {
		t.Errorf("expected at least 20 words, got %d", result.WordCount)
	}
}

func TestExtractWordDocument(t *testing.T) {
	word := &fakeWordParser{content: &WordContent{Text: sampleResumeText}}
	extractor := newTestExtractor(&fakePDFParser{}, word, 0)

	for _, mime := range []string{MimeDoc, MimeDocx} {
		result, err := extractor.Extract(context.Background(), []byte("data"), mime)
		if err != nil {
			t.Fatalf("expected success for %s, got error: %v", mime, err)
		}
		if result.Text == "" {
			t.Errorf("expected text for %s", mime)
		}
	}
}

func TestExtractNormalizesText(t *testing.T) {
	raw := "John  Smith\r\nSoftware\tEngineer\n\n\n\nwith eight years of experience building " +
		"backend services in Go and Python for payment systems at scale every day"
	pdf := &fakePDFParser{content: &PDFContent{Text: raw, PageCount: 1}}
	extractor := newTestExtractor(pdf, &fakeWordParser{}, 0)

	result, err := extractor.Extract(context.Background(), []byte("%PDF"), MimePDF)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if strings.Contains(result.Text, "\r") {
		t.Error("expected carriage returns to be normalized")
	}
	if strings.Contains(result.Text, "  ") || strings.Contains(result.Text, "\t") {
		t.Error("expected horizontal whitespace runs to collapse")
	}
	if strings.Contains(result.Text, "\n\n\n") {
		t.Error("expected newline runs to collapse to at most two")
	}
}

func TestExtractMetadataOnly(t *testing.T) {
	metadata := `{"Title": "resume.pdf", "Producer": "SomeTool", "CreationDate": "2024", "Author": "x", "Pages": "2", "Version": "1.7", "Keywords": "a b c d e f g h i j k l m"}`
	pdf := &fakePDFParser{content: &PDFContent{Text: metadata, PageCount: 1}}
	extractor := newTestExtractor(pdf, &fakeWordParser{}, 0)

	_, err := extractor.Extract(context.Background(), []byte("%PDF"), MimePDF)
	if !errors.Is(err, ErrMetadataOnlyExtraction) {
		t.Fatalf("expected ErrMetadataOnlyExtraction, got %v", err)
	}
}

func TestExtractInsufficientContent(t *testing.T) {
	pdf := &fakePDFParser{content: &PDFContent{Text: "Just a few words here", PageCount: 1}}
	extractor := newTestExtractor(pdf, &fakeWordParser{}, 0)

	_, err := extractor.Extract(context.Background(), []byte("%PDF"), MimePDF)
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent, got %v", err)
	}
}

func TestExtractTimeout(t *testing.T) {
	pdf := &fakePDFParser{
		content: &PDFContent{Text: sampleResumeText, PageCount: 1},
		delay:   500 * time.Millisecond,
	}
	extractor := newTestExtractor(pdf, &fakeWordParser{}, 20*time.Millisecond)

	_, err := extractor.Extract(context.Background(), []byte("%PDF"), MimePDF)
	if !errors.Is(err, ErrExtractionTimeout) {
		t.Fatalf("expected ErrExtractionTimeout, got %v", err)
	}
}

func TestExtractPropagatesEncryptedError(t *testing.T) {
	pdf := &fakePDFParser{err: ErrEncryptedDocument}
	extractor := newTestExtractor(pdf, &fakeWordParser{}, 0)

	_, err := extractor.Extract(context.Background(), []byte("%PDF"), MimePDF)
	if !errors.Is(err, ErrEncryptedDocument) {
		t.Fatalf("expected ErrEncryptedDocument, got %v", err)
	}
}

func TestNormalizeText(t *testing.T) {
	in := "a  b\r\nc\rd\n\n\n\ne\t f "
	got := NormalizeText(in)
	want := "a b\nc\nd\n\ne f"
	if got != want {
		t.Errorf("NormalizeText(%q) = %q, want %q", in, got, want)
	}
}

func TestLooksLikeMetadata(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{`{"Title": "doc"}`, true},
		{`[{"page": 1}]`, true},
		{"John Smith\nSoftware Engineer", false},
		{"{plain braces without colon pairs}", false},
	}

	for _, tt := range tests {
		if got := looksLikeMetadata(tt.text); got != tt.want {
			t.Errorf("looksLikeMetadata(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
