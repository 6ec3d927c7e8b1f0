package services

import (
	"errors"
	"testing"
)

func TestFileValidator(t *testing.T) {
	validator := NewFileValidatorService(1024)

	tests := []struct {
		name     string
		mimeType string
		size     int64
		wantErr  error
	}{
		{"pdf ok", MimePDF, 512, nil},
		{"docx ok", MimeDocx, 512, nil},
		{"legacy doc ok", MimeDoc, 512, nil},
		{"png rejected", "image/png", 512, ErrUnsupportedFileType},
		{"text rejected", "text/plain", 512, ErrUnsupportedFileType},
		{"empty mime rejected", "", 512, ErrUnsupportedFileType},
		{"oversize rejected", MimePDF, 2048, ErrFileTooLarge},
		{"exact limit ok", MimePDF, 1024, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.mimeType, tt.size)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFileValidatorChecksTypeBeforeSize(t *testing.T) {
	validator := NewFileValidatorService(1024)

	// Both violated: the type error wins.
	err := validator.Validate("image/png", 2048)
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}
