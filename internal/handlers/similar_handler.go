package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumely/resume-analyzer/internal/models"
	"resumely/resume-analyzer/internal/repositories"
	"resumely/resume-analyzer/internal/services"
)

const similarLimit = 5

// Query embeddings are built from the head of the resume text; the opening
// section carries name, summary and skills, which is plenty of signal.
const similarQueryChars = 4000

type SimilarHandler struct {
	resumeRepo  repositories.ResumeRepository
	embedder    services.Embedder
	vectorIndex services.VectorIndexService
}

func NewSimilarHandler(
	resumeRepo repositories.ResumeRepository,
	embedder services.Embedder,
	vectorIndex services.VectorIndexService,
) *SimilarHandler {
	return &SimilarHandler{
		resumeRepo:  resumeRepo,
		embedder:    embedder,
		vectorIndex: vectorIndex,
	}
}

// HandleSimilar returns resumes whose indexed chunks are closest to the
// given resume's text.
func (h *SimilarHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.embedder == nil || h.vectorIndex == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "similarity search is not configured",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume id",
		})
	}

	resume, err := h.resumeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "resume not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load resume",
		})
	}

	queryText := resume.ExtractedText
	if queryText == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "resume has no extracted text to compare",
		})
	}
	if len(queryText) > similarQueryChars {
		queryText = queryText[:similarQueryChars]
	}

	embedding, err := h.embedder.GenerateEmbedding(c.Context(), queryText)
	if err != nil {
		log.Printf("❌ Failed to embed similarity query for %s: %v\n", id, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to embed resume text",
		})
	}

	// Over-fetch because multiple chunks of the same resume can match.
	results, err := h.vectorIndex.SearchSimilar(c.Context(), embedding, id.String(), similarLimit*3)
	if err != nil {
		log.Printf("❌ Similarity search failed for %s: %v\n", id, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "similarity search failed",
		})
	}

	seen := make(map[string]bool)
	similar := make([]models.SimilarResume, 0, similarLimit)
	for _, result := range results {
		if result.ResumeID == "" || seen[result.ResumeID] {
			continue
		}
		seen[result.ResumeID] = true

		matchID, err := uuid.Parse(result.ResumeID)
		if err != nil {
			continue
		}
		match, err := h.resumeRepo.FindByID(matchID)
		if err != nil {
			// Row may have been deleted after indexing; skip it.
			continue
		}

		similar = append(similar, models.SimilarResume{
			ResumeID:     result.ResumeID,
			OriginalName: match.OriginalName,
			Score:        result.Score,
		})
		if len(similar) >= similarLimit {
			break
		}
	}

	return c.JSON(models.SimilarResponse{
		ResumeID: id.String(),
		Similar:  similar,
	})
}
