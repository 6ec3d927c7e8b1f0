package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"resumely/resume-analyzer/internal/models"
)

// DetailedAnalysisPlaceholder fills the narrative field whenever the provider
// response did not include a usable one.
const DetailedAnalysisPlaceholder = "A detailed analysis could not be generated for this resume. The scores above reflect the information that was recovered."

var scoreFields = []string{
	"overallScore", "atsScore", "keywordScore", "formattingScore", "contactScore",
	"educationScore", "experienceScore", "skillsScore", "structureScore",
}

var arrayFields = []string{
	"strengths", "improvements", "skills", "recommendations", "atsRecommendations", "missingKeywords",
}

// parseAttempt is one pure step of the response recovery chain.
type parseAttempt struct {
	name string
	fn   func(string) (*models.AnalysisResult, error)
}

// The chain is tried in order; the first attempt to recover at least the
// overall score wins. Stages, in order: decode the outermost JSON object
// (after stripping markdown fences), close a truncated object and decode,
// then regex-extract individual fields.
var parseAttempts = []parseAttempt{
	{name: "json_object", fn: parseJSONObject},
	{name: "brace_repair", fn: parseWithBraceRepair},
	{name: "field_extraction", fn: parseByFieldExtraction},
}

// ParseAnalysisResponse recovers a normalized AnalysisResult from whatever the
// completion provider returned. The result always satisfies the invariants:
// scores in [0,100], arrays non-nil with blank entries dropped, narrative
// defaulted. Returns ErrUnparsableResponse (with a response preview) when no
// stage recovers the overall score.
func ParseAnalysisResponse(response string) (*models.AnalysisResult, error) {
	for _, attempt := range parseAttempts {
		result, err := attempt.fn(response)
		if err == nil {
			log.Printf("✅ AI response parsed via %s stage\n", attempt.name)
			return result, nil
		}
	}

	preview := strings.TrimSpace(response)
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return nil, fmt.Errorf("%w; response preview: %q", ErrUnparsableResponse, preview)
}

// --- stage 1: fence strip + outermost object decode ---

func parseJSONObject(response string) (*models.AnalysisResult, error) {
	cleaned := stripCodeFences(response)
	object, ok := extractObject(cleaned)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(object), &m); err != nil {
		return nil, fmt.Errorf("failed to decode JSON object: %w", err)
	}

	return normalizeFromMap(m)
}

// stripCodeFences removes markdown code-fence wrappers the model may add
// despite being told not to.
func stripCodeFences(response string) string {
	clean := strings.TrimSpace(response)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// extractObject slices the outermost {...} block.
func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// --- stage 2: close a truncated object ---

// parseWithBraceRepair handles provider output cut off mid-object. It first
// appends the closers the truncation lost (quote, brackets, braces, in stack
// order), and if that still does not decode, falls back to trimming at the
// last comma before closing. The fallback is knowingly lossy: a
// partially-written trailing field is dropped.
func parseWithBraceRepair(response string) (*models.AnalysisResult, error) {
	cleaned := stripCodeFences(response)
	start := strings.Index(cleaned, "{")
	if start == -1 {
		return nil, fmt.Errorf("no opening brace in response")
	}
	fragment := cleaned[start:]

	closers := missingClosers(fragment)
	if closers == "" {
		return nil, fmt.Errorf("braces are balanced; nothing to repair")
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(fragment+closers), &m); err == nil {
		return normalizeFromMap(m)
	}

	lastComma := strings.LastIndex(fragment, ",")
	if lastComma == -1 {
		return nil, fmt.Errorf("truncated object has no complete field")
	}
	trimmed := fragment[:lastComma]
	if err := json.Unmarshal([]byte(trimmed+missingClosers(trimmed)), &m); err != nil {
		return nil, fmt.Errorf("brace repair failed: %w", err)
	}
	return normalizeFromMap(m)
}

// missingClosers walks the fragment tracking string state and an open
// container stack, and returns whatever is needed to close it: a quote if the
// fragment ends inside a string, then brackets/braces in reverse open order.
// Empty when the fragment is already balanced.
func missingClosers(fragment string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !inString && len(stack) == 0 {
		return ""
	}

	var b strings.Builder
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// --- stage 3: per-field regex extraction ---

var (
	quotedStringRe = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

	// Three successively looser shapes for the narrative field.
	narrativeRes = []*regexp.Regexp{
		regexp.MustCompile(`"detailedAnalysis"\s*:\s*"((?:[^"\\]|\\.)*)"`),
		regexp.MustCompile(`"detailedAnalysis"\s*:\s*"([^"]*)"`),
		regexp.MustCompile(`"detailedAnalysis"\s*:\s*([^,}"]+)`),
	}
)

// parseByFieldExtraction independently matches every known field, so it can
// salvage scores out of responses that are not JSON at all anymore. Succeeds
// only if the overall score was found.
func parseByFieldExtraction(response string) (*models.AnalysisResult, error) {
	m := make(map[string]any)

	for _, field := range scoreFields {
		re := regexp.MustCompile(`"` + field + `"\s*:\s*(\d+)`)
		if match := re.FindStringSubmatch(response); match != nil {
			if v, err := strconv.ParseFloat(match[1], 64); err == nil {
				m[field] = v
			}
		}
	}

	if _, ok := m["overallScore"]; !ok {
		return nil, fmt.Errorf("overall score not found in response")
	}

	for _, field := range arrayFields {
		re := regexp.MustCompile(`"` + field + `"\s*:\s*\[([^\]]*)`)
		match := re.FindStringSubmatch(response)
		if match == nil {
			continue
		}
		var values []any
		for _, quoted := range quotedStringRe.FindAllStringSubmatch(match[1], -1) {
			values = append(values, unescapeJSONString(quoted[1]))
		}
		m[field] = values
	}

	for _, re := range narrativeRes {
		if match := re.FindStringSubmatch(response); match != nil {
			m["detailedAnalysis"] = unescapeJSONString(strings.TrimSpace(match[1]))
			break
		}
	}

	return normalizeFromMap(m)
}

func unescapeJSONString(s string) string {
	replacer := strings.NewReplacer(`\n`, "\n", `\"`, `"`, `\\`, `\`)
	return replacer.Replace(s)
}

// --- normalization ---

// normalizeFromMap coerces a loosely typed decoded object into a well-formed
// AnalysisResult: integers clamped to [0,100] defaulting to 0, arrays
// defaulting to empty with blank entries filtered, narrative defaulting to the
// placeholder. Fails only when the overall score is absent or non-numeric.
func normalizeFromMap(m map[string]any) (*models.AnalysisResult, error) {
	if _, ok := coerceScore(m["overallScore"]); !ok {
		return nil, fmt.Errorf("response has no usable overall score")
	}

	scores := make(map[string]int, len(scoreFields))
	for _, field := range scoreFields {
		v, _ := coerceScore(m[field])
		scores[field] = v
	}

	arrays := make(map[string][]string, len(arrayFields))
	for _, field := range arrayFields {
		arrays[field] = coerceStringSlice(m[field])
	}

	narrative := ""
	if s, ok := m["detailedAnalysis"].(string); ok {
		narrative = strings.TrimSpace(s)
	}
	if narrative == "" {
		narrative = DetailedAnalysisPlaceholder
	}

	return &models.AnalysisResult{
		OverallScore:       scores["overallScore"],
		ATSScore:           scores["atsScore"],
		KeywordScore:       scores["keywordScore"],
		FormattingScore:    scores["formattingScore"],
		ContactScore:       scores["contactScore"],
		EducationScore:     scores["educationScore"],
		ExperienceScore:    scores["experienceScore"],
		SkillsScore:        scores["skillsScore"],
		StructureScore:     scores["structureScore"],
		Strengths:          arrays["strengths"],
		Improvements:       arrays["improvements"],
		Skills:             arrays["skills"],
		Recommendations:    arrays["recommendations"],
		ATSRecommendations: arrays["atsRecommendations"],
		MissingKeywords:    arrays["missingKeywords"],
		DetailedAnalysis:   narrative,
	}, nil
}

// coerceScore turns whatever the provider sent into a clamped [0,100] integer.
// ok reports whether the raw value was numeric at all.
func coerceScore(v any) (int, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	n := int(math.Round(f))
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n, true
}

func coerceStringSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
