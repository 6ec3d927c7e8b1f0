package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the resume scoring prompt. The schema in the
// prompt is the contract the response parser recovers against.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume analyzer. Analyze the following resume comprehensively, including ATS (Applicant Tracking System) compatibility.

Return ONLY a JSON object with the following structure. No markdown code fences, no commentary before or after the JSON.
{
  "overallScore": <number between 0-100>,
  "atsScore": <number 0-100, how well optimized for ATS systems>,
  "keywordScore": <number 0-100, keyword optimization>,
  "formattingScore": <number 0-100, resume formatting quality>,
  "contactScore": <number 0-100, contact information completeness>,
  "educationScore": <number 0-100, education section quality>,
  "experienceScore": <number 0-100, experience section quality>,
  "skillsScore": <number 0-100, skills section quality>,
  "structureScore": <number 0-100, overall structure and organization>,
  "strengths": [<array of 3-5 key strengths>],
  "improvements": [<array of 3-5 areas for improvement>],
  "detailedAnalysis": "<detailed paragraph analysis>",
  "skills": [<array of all skills identified>],
  "recommendations": [<array of 3-5 actionable recommendations>],
  "atsRecommendations": [<array of 3-5 ATS-specific optimization tips>],
  "missingKeywords": [<array of common keywords that might be missing>]
}

Resume text:
%s`, resumeText)
}
