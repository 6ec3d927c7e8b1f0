package services

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"testing"
)

func TestStorageRejectsUnsupportedExtension(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	for _, name := range []string{"resume.txt", "resume.png", "resume", "resume.pdf.exe"} {
		header := &multipart.FileHeader{Filename: name}
		_, _, err := storage.SaveFile(header)
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Errorf("expected ErrUnsupportedFileType for %q, got %v", name, err)
		}
	}
}

func TestStorageGetFilePath(t *testing.T) {
	storage := NewStorageService("./uploads")

	got := storage.GetFilePath("resume_abc.pdf")
	want := filepath.Join("./uploads", "resume_abc.pdf")
	if got != want {
		t.Errorf("GetFilePath = %q, want %q", got, want)
	}
}

func TestStorageEnsureUploadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	storage := NewStorageService(dir)

	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("expected upload dir creation to succeed, got %v", err)
	}
}
