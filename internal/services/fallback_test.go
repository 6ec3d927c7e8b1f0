package services

import (
	"strings"
	"testing"
)

func TestBuildFallbackAnalysisRichResume(t *testing.T) {
	text := `John Smith
Email: john@example.com | Phone: 555-123-4567 | LinkedIn: /in/jsmith

Summary
Backend engineer with experience in distributed systems.

Education
Bachelor of Science, State University, GPA 3.8

Experience
Senior engineer role building services in Go, Python and Docker.
Work on AWS infrastructure and SQL databases.

Projects
Portfolio of open source work on GitHub.`

	result := BuildFallbackAnalysis(text)

	if result.OverallScore <= 0 || result.OverallScore > 100 {
		t.Errorf("overall score out of range: %d", result.OverallScore)
	}
	if len(result.Skills) == 0 {
		t.Error("expected skills to be detected")
	}
	found := false
	for _, s := range result.Skills {
		if s == "Python" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Python among detected skills, got %v", result.Skills)
	}
	if len(result.Strengths) == 0 {
		t.Error("expected strengths for a resume with all major sections")
	}
	if !strings.Contains(result.DetailedAnalysis, "words") {
		t.Errorf("expected narrative to mention word count, got %q", result.DetailedAnalysis)
	}
}

func TestBuildFallbackAnalysisBareText(t *testing.T) {
	result := BuildFallbackAnalysis("just some plain text with nothing recognizable in it")

	if result.OverallScore < 0 || result.OverallScore > 100 {
		t.Errorf("overall score out of range: %d", result.OverallScore)
	}
	if len(result.Skills) != 1 || result.Skills[0] != "Skills section needed" {
		t.Errorf("expected skills placeholder, got %v", result.Skills)
	}
	if len(result.Improvements) == 0 {
		t.Error("expected improvement suggestions for a bare resume")
	}
	if result.MissingKeywords == nil {
		t.Error("expected non-nil missing keywords")
	}
}

func TestBuildFallbackAnalysisScoresClamped(t *testing.T) {
	// Text engineered to max out several score components.
	text := strings.Repeat("experience work employment position role achievement accomplish ", 5) +
		"education degree university gpa honor dean " +
		"javascript python react node mongodb sql html css java git docker aws linux typescript " +
		"certification email@example.com phone 555-123-4567 linkedin address summary project portfolio " +
		strings.Repeat("filler line\n", 15)

	result := BuildFallbackAnalysis(text)

	for name, score := range map[string]int{
		"overall":    result.OverallScore,
		"ats":        result.ATSScore,
		"keyword":    result.KeywordScore,
		"formatting": result.FormattingScore,
		"contact":    result.ContactScore,
		"education":  result.EducationScore,
		"experience": result.ExperienceScore,
		"skills":     result.SkillsScore,
		"structure":  result.StructureScore,
	} {
		if score < 0 || score > 100 {
			t.Errorf("%s score out of range: %d", name, score)
		}
	}
}
