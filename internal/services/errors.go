package services

import "errors"

// Pipeline error kinds. Handlers map these to user-facing messages, so every
// wrap site keeps the sentinel reachable through errors.Is.
var (
	// Pre-extraction (file validator)
	ErrUnsupportedFileType = errors.New("unsupported file type: only PDF and Word documents are allowed")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")

	// Extraction
	ErrEncryptedDocument      = errors.New("PDF is password-protected or encrypted")
	ErrNoExtractableText      = errors.New("document contains no extractable text; it may be scanned or image-based")
	ErrMetadataOnlyExtraction = errors.New("text extraction returned metadata instead of resume content")
	ErrInsufficientContent    = errors.New("resume contains insufficient text content")
	ErrExtractionTimeout      = errors.New("text extraction timed out")

	// Analysis
	ErrInvalidInput       = errors.New("input text is not analyzable resume content")
	ErrAnalysisTimeout    = errors.New("AI analysis timed out")
	ErrUnparsableResponse = errors.New("could not recover a usable analysis from the AI response")
	ErrProviderError      = errors.New("AI provider request failed")
)
