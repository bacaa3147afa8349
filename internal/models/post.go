package models

import "time"

// PostStatus is the lifecycle state of a composed post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostScheduled PostStatus = "scheduled"
	PostPublished PostStatus = "published"
	PostFailed    PostStatus = "failed"
)

// PostModel stores a finished or scheduled LinkedIn post.
type PostModel struct {
	Base
	Content     string      `json:"content"      gorm:"type:longtext"`
	Status      PostStatus  `json:"status"       gorm:"index;default:draft"`
	PostType    string      `json:"postType"`
	Tone        string      `json:"tone"`
	Hashtags    StringArray `json:"hashtags"     gorm:"type:longtext"`
	Media       []MediaRef  `json:"media"        gorm:"serializer:json"`
	ScheduledAt *time.Time  `json:"scheduledAt"  gorm:"index"`
	PublishedAt *time.Time  `json:"publishedAt"`
	PostURN     string      `json:"postUrn"` // LinkedIn URN returned on publish
	Message     string      `json:"message,omitempty"`
	DedupKey    string      `json:"-"            gorm:"size:191;uniqueIndex"`
}

func (PostModel) TableName() string { return "posts" }
