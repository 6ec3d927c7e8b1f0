package services

import (
	"testing"

	"resumely/resume-analyzer/internal/models"
)

const structuredResume = `John Smith
Location: Austin, TX
john.smith@example.com | 555-123-4567

Summary
Backend engineer focused on distributed systems.

Education
Bachelor of Science in Computer Science, University of Texas
Graduated 2018 with honors

Experience
Senior Software Engineer at Acme Corp
Built payment processing services in Go
Led migration to event-driven architecture

Projects
Open source contributor to several Go libraries
Built a log aggregation pipeline`

func TestFieldParserFullResume(t *testing.T) {
	parser := NewFieldParserService()

	fields := parser.Parse(structuredResume)

	if fields.ParsingStatus != models.ParsingSuccess {
		t.Fatalf("expected parsing status SUCCESS, got %s", fields.ParsingStatus)
	}
	if fields.FullName != "John Smith" {
		t.Errorf("expected full name 'John Smith', got %q", fields.FullName)
	}
	if fields.Email != "john.smith@example.com" {
		t.Errorf("unexpected email: %q", fields.Email)
	}
	if fields.Phone != "555-123-4567" {
		t.Errorf("unexpected phone: %q", fields.Phone)
	}
	if fields.Location != "Austin, TX" {
		t.Errorf("unexpected location: %q", fields.Location)
	}
	if len(fields.EducationData) == 0 {
		t.Error("expected education entries")
	}
	if len(fields.ExperienceData) == 0 {
		t.Error("expected experience entries")
	}
	if len(fields.ProjectData) == 0 {
		t.Error("expected project entries")
	}
}

func TestFieldParserEmptyText(t *testing.T) {
	parser := NewFieldParserService()

	fields := parser.Parse("")

	if fields.ParsingStatus != models.ParsingFailed {
		t.Errorf("expected parsing status FAILED for empty text, got %s", fields.ParsingStatus)
	}
	if fields.FullName != "" || fields.Email != "" {
		t.Errorf("expected empty fields, got %+v", fields)
	}
}

func TestFieldParserNameRejection(t *testing.T) {
	parser := NewFieldParserService()

	tests := []string{
		"john.smith@example.com\nSome content here",         // email in first line
		"Call 555-123-4567 now\nSome content here",          // digits in first line
		"Senior Principal Staff Software Engineer Person\n", // too many words
		"JOHN SMITH\nAll caps does not match",               // not capitalized-word shaped
	}

	for _, text := range tests {
		fields := parser.Parse(text)
		if fields.FullName != "" {
			t.Errorf("expected no name from %q, got %q", text, fields.FullName)
		}
	}
}

func TestFieldParserPhoneShapes(t *testing.T) {
	parser := NewFieldParserService()

	tests := []struct {
		text string
		want string
	}{
		{"reach me at 555-123-4567 today", "555-123-4567"},
		{"reach me at (555) 123-4567 today", "(555)123-4567"},
		{"reach me at 5551234567 today", "5551234567"},
	}

	for _, tt := range tests {
		fields := parser.Parse(tt.text)
		if fields.Phone != tt.want {
			t.Errorf("Parse(%q).Phone = %q, want %q", tt.text, fields.Phone, tt.want)
		}
	}
}

func TestFieldParserLocationFallback(t *testing.T) {
	parser := NewFieldParserService()

	// No "Location:" label; falls back to City, ST near the top.
	fields := parser.Parse("jane@example.com\nSeattle, WA\nbackend engineer")
	if fields.Location != "Seattle, WA" {
		t.Errorf("expected fallback location 'Seattle, WA', got %q", fields.Location)
	}
}

func TestFieldParserSectionStopsAtNextHeading(t *testing.T) {
	parser := NewFieldParserService()

	text := `Education
Bachelor of Science at State University
Experience
Engineer at Example Corp`

	fields := parser.Parse(text)

	if len(fields.EducationData) != 1 {
		t.Fatalf("expected exactly 1 education entry, got %d", len(fields.EducationData))
	}
	if fields.EducationData[0].Heading != "Bachelor of Science at State University" {
		t.Errorf("unexpected education entry: %+v", fields.EducationData[0])
	}
}
