package models

import "time"

// JobMatch is an immutable comparison result. ID is assigned by the store on
// creation and is never reused.
type JobMatch struct {
	ID                 uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	JobDescription     string           `gorm:"type:text;not null" json:"jobDescription"`
	OriginalScore      float64          `gorm:"type:double precision" json:"originalScore"`
	ImprovedScore      float64          `gorm:"type:double precision" json:"improvedScore"`
	ImprovedResumeData StructuredResume `gorm:"type:jsonb;serializer:json" json:"improvedResumeData"`
	AnalysisText       string           `gorm:"type:text" json:"analysisText"`
	CreatedAt          time.Time        `gorm:"not null" json:"createdAt"`
}

func (JobMatch) TableName() string {
	return "job_matches"
}

func (j JobMatch) Clone() JobMatch {
	j.ImprovedResumeData = j.ImprovedResumeData.Clone()
	return j
}
