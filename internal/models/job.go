package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

func ValidExperienceLevel(l ExperienceLevel) bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}

type JobStatus string

const (
	JobStatusDraft   JobStatus = "draft"
	JobStatusActive  JobStatus = "active"
	JobStatusClosed  JobStatus = "closed"
	JobStatusExpired JobStatus = "expired"
)

func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusClosed, JobStatusExpired:
		return true
	}
	return false
}

type Job struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text;not null" json:"description"`
	Requirements string `gorm:"type:text;not null" json:"requirements"`
	Location     string `gorm:"size:100;not null" json:"location"`

	SalaryMin *float64 `gorm:"type:decimal(10,2)" json:"salary_min,omitempty"`
	SalaryMax *float64 `gorm:"type:decimal(10,2)" json:"salary_max,omitempty"`

	JobType         JobType         `gorm:"type:varchar(20);not null" json:"job_type"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20);not null" json:"experience_level"`

	// Posted users cannot be hard-deleted while jobs reference them.
	PostedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"posted_by"`
	Poster   *User     `gorm:"foreignKey:PostedBy;constraint:OnDelete:RESTRICT" json:"poster,omitempty"`

	Status    JobStatus       `gorm:"type:varchar(20);default:draft" json:"status"`
	ExpiresAt *datatypes.Date `json:"expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
