package services

import "fmt"

const (
	MimePDF  = "application/pdf"
	MimeDoc  = "application/msword"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type FileValidatorService interface {
	Validate(mimeType string, size int64) error
}

type fileValidatorService struct {
	maxFileSize int64
}

func NewFileValidatorService(maxFileSize int64) FileValidatorService {
	return &fileValidatorService{maxFileSize: maxFileSize}
}

// Validate checks the declared MIME type and size before any processing.
// It has no side effects; callers must not persist a rejected file.
func (v *fileValidatorService) Validate(mimeType string, size int64) error {
	switch mimeType {
	case MimePDF, MimeDoc, MimeDocx:
	default:
		return fmt.Errorf("%w (got %q)", ErrUnsupportedFileType, mimeType)
	}

	if size > v.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, v.maxFileSize)
	}

	return nil
}
