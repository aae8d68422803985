package models

import "time"

// ResumeDraft is the latest saved, unpublished résumé of a user.
type ResumeDraft struct {
	ID         uint             `gorm:"primaryKey" json:"-"`
	Username   string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	ResumeData StructuredResume `gorm:"type:jsonb;serializer:json" json:"resumeData"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func (ResumeDraft) TableName() string {
	return "resume_drafts"
}

func (d ResumeDraft) Clone() ResumeDraft {
	d.ResumeData = d.ResumeData.Clone()
	return d
}
