package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"resumely/resume-analyzer/internal/models"
)

type ExtractorService interface {
	Extract(ctx context.Context, data []byte, mimeType string) (*models.ExtractedText, error)
}

const (
	minExtractedChars = 50
	minExtractedWords = 20
)

var (
	multiSpaceRe   = regexp.MustCompile(`[ \t]+`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	quotedColonRe  = regexp.MustCompile(`"[^"]*"\s*:`)
)

type extractorService struct {
	pdfParser  PDFParserService
	wordParser WordParserService
	timeout    time.Duration
}

func NewExtractorService(pdfParser PDFParserService, wordParser WordParserService, timeout time.Duration) ExtractorService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &extractorService{
		pdfParser:  pdfParser,
		wordParser: wordParser,
		timeout:    timeout,
	}
}

// Extract converts a validated PDF or Word buffer into normalized plaintext.
// The parse is raced against the extraction timeout; the underlying document
// parsers have no cancellation hook, so on timeout the abandoned parse finishes
// in the background and its result is dropped.
func (e *extractorService) Extract(ctx context.Context, data []byte, mimeType string) (*models.ExtractedText, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty (0 bytes)", ErrNoExtractableText)
	}

	log.Printf("📄 Extracting text: %d bytes, MIME type %s\n", len(data), mimeType)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type extractOutcome struct {
		result *models.ExtractedText
		err    error
	}
	done := make(chan extractOutcome, 1)

	go func() {
		res, err := e.extract(data, mimeType)
		done <- extractOutcome{result: res, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w after %s", ErrExtractionTimeout, e.timeout)
	}
}

func (e *extractorService) extract(data []byte, mimeType string) (*models.ExtractedText, error) {
	var (
		rawText   string
		pageCount int
	)

	switch mimeType {
	case MimePDF:
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			// Advisory only: some valid PDFs lack the header at offset zero.
			preview := data
			if len(preview) > 4 {
				preview = preview[:4]
			}
			log.Printf("⚠️  File doesn't start with PDF magic bytes, got %q. Continuing anyway.\n", preview)
		}

		content, err := e.pdfParser.ExtractText(data)
		if err != nil {
			return nil, err
		}
		rawText = content.Text
		pageCount = content.PageCount
		log.Printf("📄 PDF parsed: %d pages, text length %d\n", pageCount, len(rawText))

	case MimeDoc, MimeDocx:
		content, err := e.wordParser.ExtractText(data)
		if err != nil {
			return nil, err
		}
		for _, warning := range content.Warnings {
			log.Printf("⚠️  Word parsing warning: %s\n", warning)
		}
		rawText = content.Text
		log.Printf("📄 Word document parsed: text length %d\n", len(rawText))

	default:
		return nil, fmt.Errorf("%w (got %q)", ErrUnsupportedFileType, mimeType)
	}

	text := NormalizeText(rawText)

	if looksLikeMetadata(text) {
		log.Printf("❌ Extracted text appears to be JSON metadata, not resume content. Preview: %.200s\n", text)
		return nil, fmt.Errorf("%w: the document may be corrupted or in an unsupported format", ErrMetadataOnlyExtraction)
	}

	wordCount := len(strings.Fields(text))
	if len(text) < minExtractedChars || wordCount < minExtractedWords {
		return nil, fmt.Errorf("%w: got %d characters, %d words", ErrInsufficientContent, len(text), wordCount)
	}

	log.Printf("✅ Extracted %d characters, %d words. Preview: %.150s...\n",
		len(text), wordCount, strings.ReplaceAll(text, "\n", " "))

	return &models.ExtractedText{
		Text:      text,
		CharCount: len(text),
		WordCount: wordCount,
		PageCount: pageCount,
	}, nil
}

// NormalizeText cleans extracted text while preserving paragraph structure:
// line endings become \n, runs of horizontal whitespace collapse to one space,
// and runs of three or more newlines collapse to exactly two.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// looksLikeMetadata catches PDF parsers that surface embedded JSON metadata
// instead of body text.
func looksLikeMetadata(text string) bool {
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		return false
	}
	return quotedColonRe.MatchString(text)
}
