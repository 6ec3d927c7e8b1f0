package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ParsingStatus string

const (
	ParsingSuccess ParsingStatus = "SUCCESS"
	ParsingFailed  ParsingStatus = "FAILED"
)

type IndexStatus string

const (
	IndexPending IndexStatus = "index_pending"
	IndexDone    IndexStatus = "indexed"
	IndexFailed  IndexStatus = "index_failed"
	IndexSkipped IndexStatus = "index_skipped"
)

// SectionEntry is one loosely structured line captured from a resume section.
type SectionEntry struct {
	Heading string `json:"heading"`
	Details string `json:"details"`
}

// SectionEntries is stored as a single jsonb column.
type SectionEntries []SectionEntry

func (s SectionEntries) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode section entries: %w", err)
	}
	return string(b), nil
}

func (s *SectionEntries) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported section entries source type %T", src)
	}
	if len(b) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(b, s)
}

type Resume struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename     string    `gorm:"type:text" json:"filename"`
	OriginalName string    `gorm:"type:text" json:"original_name"`
	MimeType     string    `gorm:"type:text" json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	FilePath     string    `gorm:"type:text" json:"file_path"`

	ExtractedText string `gorm:"type:text" json:"-"`
	CharCount     int    `json:"char_count"`
	WordCount     int    `json:"word_count"`

	FullName       string         `gorm:"type:text" json:"full_name,omitempty"`
	Email          string         `gorm:"type:text" json:"email,omitempty"`
	Phone          string         `gorm:"type:text" json:"phone,omitempty"`
	Location       string         `gorm:"type:text" json:"location,omitempty"`
	EducationData  SectionEntries `gorm:"type:jsonb" json:"education_data"`
	ExperienceData SectionEntries `gorm:"type:jsonb" json:"experience_data"`
	ProjectData    SectionEntries `gorm:"type:jsonb" json:"project_data"`
	ParsingStatus  ParsingStatus  `gorm:"type:text;default:'FAILED'" json:"parsing_status"`

	IndexStatus IndexStatus `gorm:"type:text;default:'index_pending'" json:"index_status"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Analysis *Analysis `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Resume) TableName() string {
	return "resumes"
}
