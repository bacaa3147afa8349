package models

import "time"

// GenerationRecordModel stores the parameters and result of a successful
// AI generation call, for analytics and template prefill.
type GenerationRecordModel struct {
	Base
	SessionID  string    `json:"sessionId" gorm:"index"`
	Topic      string    `json:"topic"`
	Tone       string    `json:"tone"`
	Length     string    `json:"length"`
	Context    string    `json:"context"   gorm:"type:longtext"`
	PostType   string    `json:"postType"`
	Content    string    `json:"content"   gorm:"type:longtext"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	CapturedAt time.Time `json:"capturedAt"`
}

func (GenerationRecordModel) TableName() string { return "generation_records" }
