package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"resumely/resume-analyzer/internal/models"
	"resumely/resume-analyzer/internal/repositories"
)

const (
	indexChunkSize    = 1000
	indexChunkOverlap = 100
)

// IndexerService embeds an analyzed resume and writes its chunks into the
// vector index so it becomes visible to similar-resume lookups.
type IndexerService interface {
	IndexResume(ctx context.Context, resumeID uuid.UUID) error
}

type indexerService struct {
	resumeRepo  repositories.ResumeRepository
	chunker     TextChunker
	embedder    Embedder
	vectorIndex VectorIndexService
}

func NewIndexerService(
	resumeRepo repositories.ResumeRepository,
	chunker TextChunker,
	embedder Embedder,
	vectorIndex VectorIndexService,
) IndexerService {
	return &indexerService{
		resumeRepo:  resumeRepo,
		chunker:     chunker,
		embedder:    embedder,
		vectorIndex: vectorIndex,
	}
}

// IndexResume implements IndexerService. The index status on the resume row
// always ends up in a terminal state so the poller never re-picks a finished
// job.
func (s *indexerService) IndexResume(ctx context.Context, resumeID uuid.UUID) error {
	resume, err := s.resumeRepo.FindByID(resumeID)
	if err != nil {
		return fmt.Errorf("failed to load resume %s: %w", resumeID, err)
	}

	if s.embedder == nil || s.vectorIndex == nil {
		log.Printf("⚠️  Indexing skipped for %s: no embedding provider configured\n", resumeID)
		return s.resumeRepo.UpdateIndexStatus(resumeID, models.IndexSkipped)
	}

	if resume.ExtractedText == "" {
		log.Printf("⚠️  Indexing skipped for %s: no extracted text\n", resumeID)
		return s.resumeRepo.UpdateIndexStatus(resumeID, models.IndexSkipped)
	}

	chunks := s.chunker.ChunkText(resume.ExtractedText, indexChunkSize, indexChunkOverlap)
	log.Printf("📄 Indexing resume %s: %d chunks\n", resumeID, len(chunks))

	for i, chunk := range chunks {
		embedding, err := s.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			if statusErr := s.resumeRepo.UpdateIndexStatus(resumeID, models.IndexFailed); statusErr != nil {
				log.Printf("❌ Failed to mark resume %s as index_failed: %v\n", resumeID, statusErr)
			}
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		if err := s.vectorIndex.UpsertResumeChunk(ctx, resumeID.String(), i, chunk, embedding); err != nil {
			if statusErr := s.resumeRepo.UpdateIndexStatus(resumeID, models.IndexFailed); statusErr != nil {
				log.Printf("❌ Failed to mark resume %s as index_failed: %v\n", resumeID, statusErr)
			}
			return fmt.Errorf("failed to upsert chunk %d: %w", i, err)
		}
	}

	if err := s.resumeRepo.UpdateIndexStatus(resumeID, models.IndexDone); err != nil {
		return fmt.Errorf("failed to mark resume %s as indexed: %w", resumeID, err)
	}

	log.Printf("✅ Resume %s indexed successfully\n", resumeID)
	return nil
}
