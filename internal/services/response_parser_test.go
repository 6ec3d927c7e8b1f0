package services

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseAnalysisResponseCleanJSON(t *testing.T) {
	response := "```json\n" + `{
		"overallScore": 85,
		"atsScore": 80,
		"keywordScore": 70,
		"formattingScore": 90,
		"contactScore": 95,
		"educationScore": 75,
		"experienceScore": 82,
		"skillsScore": 88,
		"structureScore": 79,
		"strengths": ["Clear layout", "Strong experience section"],
		"improvements": ["Add more metrics"],
		"skills": ["Go", "PostgreSQL"],
		"recommendations": ["Quantify achievements"],
		"atsRecommendations": ["Use standard headings"],
		"missingKeywords": ["leadership"],
		"detailedAnalysis": "A solid resume overall."
	}` + "\n```"

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if result.OverallScore != 85 {
		t.Errorf("expected overall score 85, got %d", result.OverallScore)
	}
	if result.ATSScore != 80 {
		t.Errorf("expected ATS score 80, got %d", result.ATSScore)
	}
	if len(result.Strengths) != 2 || result.Strengths[0] != "Clear layout" {
		t.Errorf("unexpected strengths: %v", result.Strengths)
	}
	if len(result.Skills) != 2 {
		t.Errorf("expected 2 skills, got %v", result.Skills)
	}
	if result.DetailedAnalysis != "A solid resume overall." {
		t.Errorf("unexpected narrative: %q", result.DetailedAnalysis)
	}
}

func TestParseAnalysisResponseTruncated(t *testing.T) {
	response := `{"overallScore":70,"strengths":["Good format"`

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected truncated response to be repaired, got error: %v", err)
	}

	if result.OverallScore != 70 {
		t.Errorf("expected overall score 70, got %d", result.OverallScore)
	}
	if len(result.Strengths) != 1 || result.Strengths[0] != "Good format" {
		t.Errorf("expected recovered strengths, got %v", result.Strengths)
	}
	if result.DetailedAnalysis != DetailedAnalysisPlaceholder {
		t.Errorf("expected placeholder narrative, got %q", result.DetailedAnalysis)
	}
}

func TestParseAnalysisResponseTruncatedMidString(t *testing.T) {
	response := `{"overallScore": 64, "detailedAnalysis": "The resume shows`

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected repair to succeed, got error: %v", err)
	}

	if result.OverallScore != 64 {
		t.Errorf("expected overall score 64, got %d", result.OverallScore)
	}
}

func TestParseAnalysisResponseFieldExtraction(t *testing.T) {
	// Not valid JSON at all: no opening brace, prose around the fields.
	response := `Sure! Here is the analysis you asked for.
"overallScore": 77, and also "skillsScore": 90.
The "skills": ["Go", "Docker", ""] were identified.`

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected field extraction to succeed, got error: %v", err)
	}

	if result.OverallScore != 77 {
		t.Errorf("expected overall score 77, got %d", result.OverallScore)
	}
	if result.SkillsScore != 90 {
		t.Errorf("expected skills score 90, got %d", result.SkillsScore)
	}
	if len(result.Skills) != 2 {
		t.Errorf("expected blank skill entries to be dropped, got %v", result.Skills)
	}
}

func TestParseAnalysisResponseUnparsable(t *testing.T) {
	response := "I'm sorry, I cannot analyze this document."

	_, err := ParseAnalysisResponse(response)
	if !errors.Is(err, ErrUnparsableResponse) {
		t.Fatalf("expected ErrUnparsableResponse, got %v", err)
	}
	if !strings.Contains(err.Error(), "I'm sorry") {
		t.Errorf("expected error to carry a response preview, got %q", err.Error())
	}
}

func TestParseAnalysisResponseMissingOverallScore(t *testing.T) {
	response := `{"atsScore": 80, "skillsScore": 90}`

	_, err := ParseAnalysisResponse(response)
	if !errors.Is(err, ErrUnparsableResponse) {
		t.Fatalf("expected ErrUnparsableResponse when overall score is absent, got %v", err)
	}
}

func TestParseAnalysisResponseClampsScores(t *testing.T) {
	response := `{"overallScore": 150, "atsScore": -20, "keywordScore": 42.6}`

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if result.OverallScore != 100 {
		t.Errorf("expected overall score clamped to 100, got %d", result.OverallScore)
	}
	if result.ATSScore != 0 {
		t.Errorf("expected ATS score clamped to 0, got %d", result.ATSScore)
	}
	if result.KeywordScore != 43 {
		t.Errorf("expected keyword score rounded to 43, got %d", result.KeywordScore)
	}
}

func TestParseAnalysisResponseStringScore(t *testing.T) {
	response := `{"overallScore": "88"}`

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected string score to be coerced, got error: %v", err)
	}
	if result.OverallScore != 88 {
		t.Errorf("expected overall score 88, got %d", result.OverallScore)
	}
}

func TestParseAnalysisResponseArraysNeverNil(t *testing.T) {
	response := `{"overallScore": 50}`

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	for name, arr := range map[string][]string{
		"strengths":          result.Strengths,
		"improvements":       result.Improvements,
		"skills":             result.Skills,
		"recommendations":    result.Recommendations,
		"atsRecommendations": result.ATSRecommendations,
		"missingKeywords":    result.MissingKeywords,
	} {
		if arr == nil {
			t.Errorf("expected %s to be non-nil", name)
		}
	}
}

func TestParseAnalysisResponseIdempotent(t *testing.T) {
	response := `{"overallScore": 73, "strengths": ["a", "b"], "detailedAnalysis": "ok"}`

	first, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	second, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("expected success on second parse, got error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parsing diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestMissingClosers(t *testing.T) {
	tests := []struct {
		fragment string
		want     string
	}{
		{`{"a": 1}`, ""},
		{`{"a": 1`, "}"},
		{`{"a": ["x"`, "]}"},
		{`{"a": "unterminated`, `"}`},
		{`{"a": {"b": [1, 2`, "]}}"},
		{`{"a": "has \" escape`, `"}`},
	}

	for _, tt := range tests {
		if got := missingClosers(tt.fragment); got != tt.want {
			t.Errorf("missingClosers(%q) = %q, want %q", tt.fragment, got, tt.want)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
	}

	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
