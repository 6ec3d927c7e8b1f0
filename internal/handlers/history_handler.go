package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resumely/resume-analyzer/internal/models"
	"resumely/resume-analyzer/internal/repositories"
)

const historyLimit = 10

type HistoryHandler struct {
	resumeRepo repositories.ResumeRepository
}

func NewHistoryHandler(resumeRepo repositories.ResumeRepository) *HistoryHandler {
	return &HistoryHandler{resumeRepo: resumeRepo}
}

// HandleHistory returns the most recent analyses, newest first.
func (h *HistoryHandler) HandleHistory(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.FindRecent(historyLimit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load analysis history",
		})
	}

	items := make([]models.HistoryItem, 0, len(resumes))
	for _, resume := range resumes {
		item := models.HistoryItem{
			ResumeID:     resume.ID.String(),
			OriginalName: resume.OriginalName,
			UploadedAt:   resume.CreatedAt,
		}
		if resume.Analysis != nil {
			item.OverallScore = resume.Analysis.OverallScore
		}
		items = append(items, item)
	}

	return c.JSON(models.HistoryResponse{Resumes: items})
}
