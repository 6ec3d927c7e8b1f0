package services

import (
	"time"

	"github.com/google/uuid"

	"resumely/resume-analyzer/internal/models"
)

// FileMeta is the upload metadata the assembler copies into records.
type FileMeta struct {
	Filename     string
	OriginalName string
	MimeType     string
	FilePath     string
	FileSize     int64
}

// AssembledRecords bundles everything one analyzed upload produces: the
// persistence rows and the caller-facing payload.
type AssembledRecords struct {
	Resume   *models.Resume
	Analysis *models.Analysis
	Response *models.AnalyzeResponse
}

type AssemblerService interface {
	Assemble(meta FileMeta, extracted *models.ExtractedText, fields models.ParsedResumeFields,
		analysis *models.AnalysisResult, provider, model string, processingMs int64) *AssembledRecords
}

type assemblerService struct{}

func NewAssemblerService() AssemblerService {
	return &assemblerService{}
}

// Assemble is pure field copying; no business logic.
func (a *assemblerService) Assemble(meta FileMeta, extracted *models.ExtractedText, fields models.ParsedResumeFields,
	analysis *models.AnalysisResult, provider, model string, processingMs int64) *AssembledRecords {

	now := time.Now()

	resume := &models.Resume{
		ID:             uuid.New(),
		Filename:       meta.Filename,
		OriginalName:   meta.OriginalName,
		MimeType:       meta.MimeType,
		FileSize:       meta.FileSize,
		FilePath:       meta.FilePath,
		ExtractedText:  extracted.Text,
		CharCount:      extracted.CharCount,
		WordCount:      extracted.WordCount,
		FullName:       fields.FullName,
		Email:          fields.Email,
		Phone:          fields.Phone,
		Location:       fields.Location,
		EducationData:  fields.EducationData,
		ExperienceData: fields.ExperienceData,
		ProjectData:    fields.ProjectData,
		ParsingStatus:  fields.ParsingStatus,
		IndexStatus:    models.IndexPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	analysisRow := &models.Analysis{
		ID:                 uuid.New(),
		ResumeID:           resume.ID,
		OverallScore:       analysis.OverallScore,
		ATSScore:           analysis.ATSScore,
		KeywordScore:       analysis.KeywordScore,
		FormattingScore:    analysis.FormattingScore,
		ContactScore:       analysis.ContactScore,
		EducationScore:     analysis.EducationScore,
		ExperienceScore:    analysis.ExperienceScore,
		SkillsScore:        analysis.SkillsScore,
		StructureScore:     analysis.StructureScore,
		Strengths:          analysis.Strengths,
		Improvements:       analysis.Improvements,
		Skills:             analysis.Skills,
		Recommendations:    analysis.Recommendations,
		ATSRecommendations: analysis.ATSRecommendations,
		MissingKeywords:    analysis.MissingKeywords,
		DetailedAnalysis:   analysis.DetailedAnalysis,
		Provider:           provider,
		Model:              model,
		ProcessingMs:       processingMs,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	response := &models.AnalyzeResponse{
		Success:        true,
		ResumeID:       resume.ID.String(),
		AnalysisResult: *analysis,
		ParsedFields:   fields,
		Meta: models.AnalyzeMeta{
			OriginalName:     meta.OriginalName,
			FileSize:         meta.FileSize,
			CharCount:        extracted.CharCount,
			WordCount:        extracted.WordCount,
			PageCount:        extracted.PageCount,
			Provider:         provider,
			Model:            model,
			ProcessingTimeMs: processingMs,
		},
	}

	return &AssembledRecords{
		Resume:   resume,
		Analysis: analysisRow,
		Response: response,
	}
}
