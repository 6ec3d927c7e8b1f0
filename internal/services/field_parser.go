package services

import (
	"log"
	"regexp"
	"strings"

	"resumely/resume-analyzer/internal/models"
)

// FieldParserService does heuristic, best-effort structured extraction from
// resume text. It is purely assistive: false negatives are expected and
// acceptable, and it never fails — any internal error degrades to an all-empty
// result with status FAILED.
type FieldParserService interface {
	Parse(text string) models.ParsedResumeFields
}

type fieldParserService struct{}

func NewFieldParserService() FieldParserService {
	return &fieldParserService{}
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Ordered: dashed/dotted triplets, parenthesized area code, international
	// prefix, bare 10 digits. First match wins.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\b\d{10}\b`),
	}

	locationLabelRe = regexp.MustCompile(`(?i)(city|state|country|address|location|based in|residing in):?\s*([^\n]+)`)
	cityStateRe     = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*),\s*([A-Z]{2}|[A-Z][a-z]+)\b`)

	nameWordRe     = regexp.MustCompile(`^[A-Z][a-z-]+$`)
	threeDigitsRe  = regexp.MustCompile(`\d{3}`)
	bulletOnlyRe   = regexp.MustCompile(`^[-•\s]+$`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	educationStop  = regexp.MustCompile(`(?i)^(experience|work|projects|skills|summary|objective)`)
	experienceStop = regexp.MustCompile(`(?i)^(education|projects|skills|summary|objective|references)`)
	projectStop    = regexp.MustCompile(`(?i)^(education|experience|skills|summary|objective|references)`)
)

var (
	educationKeywords  = []string{"education", "academic", "qualification", "degree", "university", "college", "school"}
	experienceKeywords = []string{"experience", "work", "employment", "career", "professional"}
	projectKeywords    = []string{"projects", "project", "portfolio", "work samples"}
)

func (f *fieldParserService) Parse(text string) (parsed models.ParsedResumeFields) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  Resume field parsing failed: %v\n", r)
			parsed = models.ParsedResumeFields{ParsingStatus: models.ParsingFailed}
		}
	}()

	parsed = models.ParsedResumeFields{ParsingStatus: models.ParsingFailed}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	if match := emailRe.FindString(text); match != "" {
		parsed.Email = match
	}

	for _, re := range phoneRes {
		if match := re.FindString(text); match != "" {
			parsed.Phone = truncate(whitespaceRe.ReplaceAllString(match, ""), 20)
			break
		}
	}

	parsed.Location = extractLocation(text, lines)
	parsed.FullName = extractFullName(lines)

	parsed.EducationData = extractSection(lines, educationKeywords, educationStop, 20, 10)
	parsed.ExperienceData = extractSection(lines, experienceKeywords, experienceStop, 30, 15)
	parsed.ProjectData = extractSection(lines, projectKeywords, projectStop, 20, 10)

	if parsed.FullName != "" || parsed.Email != "" || parsed.Phone != "" || parsed.Location != "" ||
		len(parsed.EducationData) > 0 || len(parsed.ExperienceData) > 0 || len(parsed.ProjectData) > 0 {
		parsed.ParsingStatus = models.ParsingSuccess
	}

	return parsed
}

func extractLocation(text string, lines []string) string {
	if m := locationLabelRe.FindStringSubmatch(text); len(m) == 3 && strings.TrimSpace(m[2]) != "" {
		return truncate(strings.TrimSpace(m[2]), 100)
	}

	// Fallback: look for a "City, ST" shaped token near the top.
	top := lines
	if len(top) > 5 {
		top = top[:5]
	}
	if m := cityStateRe.FindString(strings.Join(top, " ")); m != "" {
		return truncate(m, 100)
	}

	return ""
}

// extractFullName only looks at the very first non-empty line, and only
// accepts 2-4 capitalized-word-shaped tokens. Deliberately conservative.
func extractFullName(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	firstLine := lines[0]
	if strings.Contains(firstLine, "@") || threeDigitsRe.MatchString(firstLine) {
		return ""
	}

	var words []string
	for _, w := range whitespaceRe.Split(firstLine, -1) {
		if len(w) > 1 {
			words = append(words, w)
		}
	}
	if len(words) < 2 || len(words) > 4 {
		return ""
	}
	for _, w := range words {
		if !nameWordRe.MatchString(w) {
			return ""
		}
	}

	return truncate(firstLine, 100)
}

// extractSection finds the first line containing a heading keyword, then
// collects subsequent content lines until another section heading appears or
// the scan cap is reached.
func extractSection(lines []string, keywords []string, stop *regexp.Regexp, scanCap, keepCap int) []models.SectionEntry {
	start := -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				start = i
				break
			}
		}
		if start != -1 {
			break
		}
	}
	if start == -1 {
		return nil
	}

	var collected []string
	for i := start + 1; i < len(lines) && i < start+scanCap; i++ {
		line := lines[i]
		if stop.MatchString(line) {
			break
		}
		if len(line) > 5 && !bulletOnlyRe.MatchString(line) {
			collected = append(collected, line)
		}
	}

	if len(collected) > keepCap {
		collected = collected[:keepCap]
	}

	entries := make([]models.SectionEntry, 0, len(collected))
	for _, line := range collected {
		entries = append(entries, models.SectionEntry{
			Heading: truncate(line, 200),
			Details: line,
		})
	}
	return entries
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
