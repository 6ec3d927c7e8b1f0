package services

import (
	"fmt"
	"regexp"
	"strings"

	"resumely/resume-analyzer/internal/models"
)

var commonSkills = []string{
	"javascript", "python", "react", "node", "mongodb", "sql", "html", "css",
	"java", "c++", "git", "docker", "aws", "linux", "typescript", "angular",
	"vue", "express", "rest", "api",
}

var suggestedKeywords = []string{
	"leadership", "communication", "problem solving", "teamwork", "project management",
}

var defaultRecommendations = []string{
	"Use action verbs to describe your achievements",
	"Quantify your accomplishments with numbers and metrics",
	"Tailor your resume to the job description",
	"Keep formatting clean and consistent",
	"Proofread for grammar and spelling errors",
}

var defaultATSRecommendations = []string{
	"Use standard section headings (Experience, Education, Skills)",
	"Avoid graphics, images, and complex formatting",
	"Save as PDF to preserve formatting",
	"Include relevant keywords from job descriptions",
}

var fallbackPhoneRe = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)

// BuildFallbackAnalysis produces a keyword-heuristic AnalysisResult without
// calling the completion provider. Used when no provider is configured. The
// output satisfies the same invariants as a provider-backed result.
func BuildFallbackAnalysis(resumeText string) *models.AnalysisResult {
	text := strings.ToLower(resumeText)

	var skills []string
	for _, skill := range commonSkills {
		if strings.Contains(text, skill) {
			skills = append(skills, strings.ToUpper(skill[:1])+skill[1:])
		}
	}

	hasEducation := containsAny(text, "education", "degree", "university", "college", "bachelor", "master")
	hasExperience := containsAny(text, "experience", "work", "employment", "position", "role")
	hasProjects := containsAny(text, "project", "portfolio")
	hasPhone := containsAny(text, "phone", "mobile") || fallbackPhoneRe.MatchString(resumeText)
	hasContact := (strings.Contains(text, "@") || strings.Contains(text, "email")) && hasPhone
	hasSummary := containsAny(text, "summary", "objective", "profile")

	contactScore := 0
	if strings.Contains(text, "@") || strings.Contains(text, "email") {
		contactScore += 30
	}
	if hasPhone {
		contactScore += 30
	}
	if containsAny(text, "linkedin", "github", "portfolio") {
		contactScore += 20
	}
	if containsAny(text, "address", "location") {
		contactScore += 20
	}

	educationScore := 20
	if hasEducation {
		educationScore = 70
	}
	if containsAny(text, "gpa", "grade") {
		educationScore += 15
	}
	if containsAny(text, "honor", "dean") {
		educationScore += 15
	}

	experienceScore := 20
	if hasExperience {
		experienceScore = 60
	}
	if countMatches(text, "experience", "work", "employment", "position", "role") > 2 {
		experienceScore += 20
	}
	if containsAny(text, "achievement", "accomplish") {
		experienceScore += 10
	}
	if regexp.MustCompile(`\d`).MatchString(text) {
		experienceScore += 10 // has numbers/metrics
	}

	skillsScore := 20
	if len(skills) > 0 {
		skillsScore = min(60+len(skills)*2, 100)
	}
	if len(skills) > 5 {
		skillsScore += 20
	}
	if containsAny(text, "certification", "certificate") {
		skillsScore += 10
	}

	formattingScore := 60
	if len(text) > 500 && len(text) < 2000 {
		formattingScore += 20
	}
	if !containsAny(text, "table", "column") {
		formattingScore += 10
	}
	if len(strings.Split(text, "\n")) > 10 {
		formattingScore += 10
	}

	structureScore := 50
	if hasContact {
		structureScore += 10
	}
	if hasSummary {
		structureScore += 10
	}
	if hasEducation {
		structureScore += 10
	}
	if hasExperience {
		structureScore += 15
	}
	if hasProjects {
		structureScore += 10
	}
	if len(skills) > 0 {
		structureScore += 5
	}

	atsScore := 50
	if hasContact {
		atsScore += 10
	}
	if len(skills) > 3 {
		atsScore += 10
	}
	if hasEducation {
		atsScore += 10
	}
	if hasExperience {
		atsScore += 10
	}
	if len(text) > 500 && len(text) < 2000 {
		atsScore += 10
	}
	if !containsAny(text, "table", "image", "graphic") {
		atsScore += 10
	}

	totalWords := len(strings.Fields(text))
	keywordDensity := float64(len(skills)) / max(float64(totalWords)/100, 1)
	keywordScore := int(min(keywordDensity*20, 100))

	overallScore := (atsScore + educationScore + experienceScore + skillsScore + formattingScore + structureScore) / 6

	var strengths, improvements, atsRecommendations, missingKeywords []string

	if hasEducation {
		strengths = append(strengths, "Education section is present")
	} else {
		improvements = append(improvements, "Add an education section")
		atsRecommendations = append(atsRecommendations, "Include education section for better ATS parsing")
	}

	if hasExperience {
		strengths = append(strengths, "Work experience is documented")
	} else {
		improvements = append(improvements, "Include work experience or internships")
	}

	if len(skills) > 0 {
		strengths = append(strengths, fmt.Sprintf("Strong technical skills identified (%d skills)", len(skills)))
	} else {
		improvements = append(improvements, "List relevant technical skills")
		atsRecommendations = append(atsRecommendations, "Add a dedicated skills section with relevant keywords")
	}

	if hasProjects {
		strengths = append(strengths, "Projects section included")
	} else {
		improvements = append(improvements, "Add a projects section to showcase your work")
	}

	if hasContact {
		strengths = append(strengths, "Contact information is present")
	} else {
		improvements = append(improvements, "Ensure contact information is complete")
		atsRecommendations = append(atsRecommendations, "Include email and phone number in a standard format")
	}

	if len(text) > 500 {
		strengths = append(strengths, "Resume has sufficient detail")
	} else {
		improvements = append(improvements, "Add more detail to your resume")
	}

	if !hasSummary {
		atsRecommendations = append(atsRecommendations, "Add a professional summary or objective section")
	}
	if containsAny(text, "table", "column") {
		atsRecommendations = append(atsRecommendations, "Avoid using tables or complex formatting - ATS systems may not parse them correctly")
	}
	if len(skills) < 5 {
		atsRecommendations = append(atsRecommendations, "Include more relevant keywords and skills from the job description")
	}

	for _, keyword := range suggestedKeywords {
		if !strings.Contains(text, keyword) {
			missingKeywords = append(missingKeywords, keyword)
		}
	}

	if len(strengths) == 0 {
		strengths = []string{"Resume structure is present"}
	}
	if len(improvements) == 0 {
		improvements = []string{"Continue building your experience"}
	}
	if len(skills) == 0 {
		skills = []string{"Skills section needed"}
	}
	if len(atsRecommendations) == 0 {
		atsRecommendations = defaultATSRecommendations
	}
	if missingKeywords == nil {
		missingKeywords = []string{}
	}

	detailed := fmt.Sprintf("This resume contains %d words. ", totalWords)
	if hasEducation {
		detailed += "Education background is included. "
	}
	if hasExperience {
		detailed += "Work experience is documented. "
	}
	if len(skills) > 0 {
		preview := skills
		if len(preview) > 5 {
			preview = preview[:5]
		}
		detailed += fmt.Sprintf("Technical skills identified: %s. ", strings.Join(preview, ", "))
	}
	detailed += fmt.Sprintf("The ATS compatibility score is %d/100. Consider tailoring your resume to highlight your most relevant achievements and skills for better ATS parsing.", clampScore(atsScore))

	return &models.AnalysisResult{
		OverallScore:       clampScore(overallScore),
		ATSScore:           clampScore(atsScore),
		KeywordScore:       clampScore(keywordScore),
		FormattingScore:    clampScore(formattingScore),
		ContactScore:       clampScore(contactScore),
		EducationScore:     clampScore(educationScore),
		ExperienceScore:    clampScore(experienceScore),
		SkillsScore:        clampScore(skillsScore),
		StructureScore:     clampScore(structureScore),
		Strengths:          strengths,
		Improvements:       improvements,
		Skills:             skills,
		Recommendations:    defaultRecommendations,
		ATSRecommendations: atsRecommendations,
		MissingKeywords:    missingKeywords,
		DetailedAnalysis:   detailed,
	}
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func countMatches(text string, needles ...string) int {
	count := 0
	for _, needle := range needles {
		count += strings.Count(text, needle)
	}
	return count
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
