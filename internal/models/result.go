package models

import "time"

type AnalyzeResponse struct {
	Success  bool   `json:"success"`
	ResumeID string `json:"resumeId"`
	AnalysisResult
	ParsedFields ParsedResumeFields `json:"parsedFields"`
	Meta         AnalyzeMeta        `json:"meta"`
}

type AnalyzeMeta struct {
	OriginalName     string `json:"original_name"`
	FileSize         int64  `json:"file_size"`
	CharCount        int    `json:"char_count"`
	WordCount        int    `json:"word_count"`
	PageCount        int    `json:"page_count,omitempty"`
	Provider         string `json:"provider"`
	Model            string `json:"model,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

type HistoryItem struct {
	ResumeID     string    `json:"resume_id"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
	OverallScore int       `json:"overall_score"`
}

type HistoryResponse struct {
	Resumes []HistoryItem `json:"resumes"`
}

type SimilarResume struct {
	ResumeID     string  `json:"resume_id"`
	OriginalName string  `json:"original_name"`
	Score        float32 `json:"score"`
}

type SimilarResponse struct {
	ResumeID string          `json:"resume_id"`
	Similar  []SimilarResume `json:"similar"`
}
