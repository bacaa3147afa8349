package publish

import "time"

// OutcomeKind tags the result of a posting attempt. A collaborator that
// quietly saved the post as a LinkedIn draft is still a success; callers
// switch on the kind instead of parsing messages.
type OutcomeKind string

const (
	OutcomePosted       OutcomeKind = "posted"
	OutcomeSavedAsDraft OutcomeKind = "savedAsDraft"
)

// Outcome is the tagged result of a publish call.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	PostID  string      `json:"postId"`
	PostURN string      `json:"postUrn,omitempty"`
	PostURL string      `json:"postUrl,omitempty"`
	Message string      `json:"message,omitempty"`
}

type postDTO struct {
	Session  string   `json:"session"`
	Tone     string   `json:"tone"`
	PostType string   `json:"postType"`
	Hashtags []string `json:"hashtags"`
}

type scheduleDTO struct {
	Session      string    `json:"session"`
	ScheduledFor time.Time `json:"scheduledFor" binding:"required"`
	Tone         string    `json:"tone"`
	PostType     string    `json:"postType"`
	Hashtags     []string  `json:"hashtags"`
}
