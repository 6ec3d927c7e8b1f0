package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type WordParserService interface {
	ExtractText(data []byte) (*WordContent, error)
}

type WordContent struct {
	Text string
	// Warnings carries non-fatal converter complaints. The docx reader does not
	// report structured warnings, so this is empty unless a page fails to decode.
	Warnings []string
}

type wordParserService struct{}

func NewWordParserService() WordParserService {
	return &wordParserService{}
}

// ExtractText extracts the raw text of a Word document, ignoring formatting.
func (w *wordParserService) ExtractText(data []byte) (*WordContent, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Word document: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	text := stripDocxMarkup(content)

	if len(strings.TrimSpace(text)) < 10 {
		return nil, fmt.Errorf("%w: Word document appears to be empty or unreadable", ErrNoExtractableText)
	}

	return &WordContent{Text: text}, nil
}

// stripDocxMarkup drops the WordprocessingML tags GetContent leaves in place,
// turning paragraph boundaries into newlines.
func stripDocxMarkup(content string) string {
	replacer := strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:tab/>", " ",
	)
	content = replacer.Replace(content)

	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
