package models

import "time"

type Portfolio struct {
	ID         uint             `gorm:"primaryKey" json:"-"`
	Username   string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Template   string           `gorm:"type:varchar(64);not null" json:"template"`
	ResumeData StructuredResume `gorm:"type:jsonb;serializer:json" json:"resumeData"`
	IsPublic   bool             `gorm:"not null;default:false" json:"isPublic"`
	UpdatedAt  time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

func (p Portfolio) Clone() Portfolio {
	p.ResumeData = p.ResumeData.Clone()
	return p
}
