package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ExtractedText is the normalized plaintext produced by the text extractor,
// plus the metrics derived from it. It is never empty once constructed.
type ExtractedText struct {
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
	WordCount int    `json:"word_count"`
	PageCount int    `json:"page_count,omitempty"`
}

// ParsedResumeFields is the best-effort structured extraction from resume text.
// All fields are optional; ParsingStatus is SUCCESS iff anything was populated.
type ParsedResumeFields struct {
	FullName       string         `json:"full_name,omitempty"`
	Email          string         `json:"email,omitempty"`
	Phone          string         `json:"phone,omitempty"`
	Location       string         `json:"location,omitempty"`
	EducationData  []SectionEntry `json:"education_data"`
	ExperienceData []SectionEntry `json:"experience_data"`
	ProjectData    []SectionEntry `json:"project_data"`
	ParsingStatus  ParsingStatus  `json:"parsing_status"`
}

// AnalysisResult is the scoring record recovered from the completion provider.
// Every score is clamped to [0,100]; array fields are never nil.
type AnalysisResult struct {
	OverallScore    int `json:"overallScore"`
	ATSScore        int `json:"atsScore"`
	KeywordScore    int `json:"keywordScore"`
	FormattingScore int `json:"formattingScore"`
	ContactScore    int `json:"contactScore"`
	EducationScore  int `json:"educationScore"`
	ExperienceScore int `json:"experienceScore"`
	SkillsScore     int `json:"skillsScore"`
	StructureScore  int `json:"structureScore"`

	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
	Skills             []string `json:"skills"`
	Recommendations    []string `json:"recommendations"`
	ATSRecommendations []string `json:"atsRecommendations"`
	MissingKeywords    []string `json:"missingKeywords"`

	DetailedAnalysis string `json:"detailedAnalysis"`
}

type Analysis struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID uuid.UUID `gorm:"type:uuid;not null" json:"resume_id"`

	OverallScore    int `json:"overall_score"`
	ATSScore        int `json:"ats_score"`
	KeywordScore    int `json:"keyword_score"`
	FormattingScore int `json:"formatting_score"`
	ContactScore    int `json:"contact_score"`
	EducationScore  int `json:"education_score"`
	ExperienceScore int `json:"experience_score"`
	SkillsScore     int `json:"skills_score"`
	StructureScore  int `json:"structure_score"`

	Strengths          pq.StringArray `gorm:"type:text[]" json:"strengths"`
	Improvements       pq.StringArray `gorm:"type:text[]" json:"improvements"`
	Skills             pq.StringArray `gorm:"type:text[]" json:"skills"`
	Recommendations    pq.StringArray `gorm:"type:text[]" json:"recommendations"`
	ATSRecommendations pq.StringArray `gorm:"type:text[]" json:"ats_recommendations"`
	MissingKeywords    pq.StringArray `gorm:"type:text[]" json:"missing_keywords"`

	DetailedAnalysis string `gorm:"type:text" json:"detailed_analysis"`

	Provider     string `gorm:"type:text" json:"provider"`
	Model        string `gorm:"type:text" json:"model"`
	ProcessingMs int64  `json:"processing_ms"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Resume Resume `gorm:"foreignKey:ResumeID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}
