package handlers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"resumely/resume-analyzer/internal/models"
	"resumely/resume-analyzer/internal/repositories"
	"resumely/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	validator      services.FileValidatorService
	storageService services.StorageService
	extractor      services.ExtractorService
	fieldParser    services.FieldParserService
	analyzer       services.AnalyzerService
	assembler      services.AssemblerService
	resumeRepo     repositories.ResumeRepository
	analysisRepo   repositories.AnalysisRepository
	worker         services.Worker
	modelName      string
}

// NewAnalyzeHandler wires the analysis pipeline. analyzer may be nil, in
// which case scoring falls back to the keyword heuristic.
func NewAnalyzeHandler(
	validator services.FileValidatorService,
	storageService services.StorageService,
	extractor services.ExtractorService,
	fieldParser services.FieldParserService,
	analyzer services.AnalyzerService,
	assembler services.AssemblerService,
	resumeRepo repositories.ResumeRepository,
	analysisRepo repositories.AnalysisRepository,
	worker services.Worker,
	modelName string,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		validator:      validator,
		storageService: storageService,
		extractor:      extractor,
		fieldParser:    fieldParser,
		analyzer:       analyzer,
		assembler:      assembler,
		resumeRepo:     resumeRepo,
		analysisRepo:   analysisRepo,
		worker:         worker,
		modelName:      modelName,
	}
}

// HandleAnalyze runs the full pipeline synchronously: validate, store,
// extract, parse fields, score, persist. The caller gets the complete
// analysis in the response. Only vector indexing happens asynchronously.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	start := time.Now()

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload a resume as 'resume'.",
		})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if err := h.validator.Validate(mimeType, fileHeader.Size); err != nil {
		return errorResponse(c, err)
	}

	filename, filePath, err := h.storageService.SaveFile(fileHeader)
	if err != nil {
		return errorResponse(c, err)
	}

	// Any failure past this point must not leave the stored file behind.
	cleanup := func() {
		if err := h.storageService.DeleteFile(filename); err != nil {
			log.Printf("⚠️  Failed to clean up file %s: %v\n", filename, err)
		}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		cleanup()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	log.Printf("📄 Processing %s (%d bytes, %s)\n", fileHeader.Filename, fileHeader.Size, mimeType)

	extracted, err := h.extractor.Extract(c.Context(), data, mimeType)
	if err != nil {
		cleanup()
		return errorResponse(c, err)
	}

	fields := h.fieldParser.Parse(extracted.Text)

	var (
		analysis *models.AnalysisResult
		provider string
		model    string
	)
	if h.analyzer != nil {
		analysis, err = h.analyzer.Analyze(c.Context(), extracted.Text)
		if err != nil {
			cleanup()
			return errorResponse(c, err)
		}
		provider = "gemini"
		model = h.modelName
	} else {
		analysis = services.BuildFallbackAnalysis(extracted.Text)
		provider = "fallback"
	}

	processingMs := time.Since(start).Milliseconds()

	records := h.assembler.Assemble(services.FileMeta{
		Filename:     filename,
		OriginalName: fileHeader.Filename,
		MimeType:     mimeType,
		FilePath:     filePath,
		FileSize:     fileHeader.Size,
	}, extracted, fields, analysis, provider, model, processingMs)

	if err := h.resumeRepo.Create(records.Resume); err != nil {
		cleanup()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume record: %v", err),
		})
	}

	if err := h.analysisRepo.Create(records.Analysis); err != nil {
		if delErr := h.resumeRepo.Delete(records.Resume.ID); delErr != nil {
			log.Printf("⚠️  Failed to roll back resume row %s: %v\n", records.Resume.ID, delErr)
		}
		cleanup()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save analysis record: %v", err),
		})
	}

	if h.worker != nil {
		h.worker.EnqueueJob(records.Resume.ID)
	}

	log.Printf("✅ Analysis complete for %s in %dms (overall %d)\n",
		fileHeader.Filename, processingMs, analysis.OverallScore)

	return c.Status(fiber.StatusOK).JSON(records.Response)
}

// errorResponse maps pipeline sentinel errors to HTTP statuses. Unrecognized
// errors become 500s without leaking internals.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrUnsupportedFileType):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrFileTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrEncryptedDocument),
		errors.Is(err, services.ErrNoExtractableText),
		errors.Is(err, services.ErrMetadataOnlyExtraction),
		errors.Is(err, services.ErrInsufficientContent),
		errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrExtractionTimeout),
		errors.Is(err, services.ErrAnalysisTimeout):
		status = fiber.StatusGatewayTimeout
	case errors.Is(err, services.ErrUnparsableResponse),
		errors.Is(err, services.ErrProviderError):
		status = fiber.StatusBadGateway
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("❌ Unexpected pipeline error: %v\n", err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
