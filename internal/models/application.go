package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationApplied   ApplicationStatus = "applied"
	ApplicationScreening ApplicationStatus = "screening"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationOffer     ApplicationStatus = "offer"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationHired     ApplicationStatus = "hired"
)

func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationApplied, ApplicationScreening, ApplicationInterview,
		ApplicationOffer, ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

type Application struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	JobID uint `gorm:"not null;index" json:"job_id"`

	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`

	Status      ApplicationStatus `gorm:"type:varchar(20);default:applied" json:"status"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter,omitempty"`
	ResumePath  string            `gorm:"size:255" json:"resume_path,omitempty"`

	AppliedAt time.Time `gorm:"autoCreateTime;column:applied_at" json:"applied_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Job       *Job  `gorm:"foreignKey:JobID;constraint:OnDelete:RESTRICT" json:"job,omitempty"`
	Candidate *User `gorm:"foreignKey:CandidateID;constraint:OnDelete:RESTRICT" json:"candidate,omitempty"`
}
