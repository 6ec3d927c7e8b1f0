package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumely/resume-analyzer/internal/repositories"
	"resumely/resume-analyzer/internal/services"
)

type ResultHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	vectorIndex    services.VectorIndexService
}

func NewResultHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	vectorIndex services.VectorIndexService,
) *ResultHandler {
	return &ResultHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		vectorIndex:    vectorIndex,
	}
}

// HandleGetResume returns one stored resume with its analysis.
func (h *ResultHandler) HandleGetResume(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume id",
		})
	}

	resume, err := h.resumeRepo.FindByIDWithAnalysis(id)
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

	return c.JSON(fiber.Map{
		"resume":   resume,
		"analysis": resume.Analysis,
	})
}

// HandleDeleteResume removes the stored file, the database rows and any
// indexed vectors for one resume.
func (h *ResultHandler) HandleDeleteResume(c *fiber.Ctx) error {
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

	if err := h.resumeRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete resume",
		})
	}

	// File and vector cleanup are best-effort once the row is gone.
	if err := h.storageService.DeleteFile(resume.Filename); err != nil {
		log.Printf("⚠️  Failed to delete file for resume %s: %v\n", id, err)
	}
	if h.vectorIndex != nil {
		if err := h.vectorIndex.DeleteResume(c.Context(), id.String()); err != nil {
			log.Printf("⚠️  Failed to delete vectors for resume %s: %v\n", id, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "resume deleted",
	})
}
