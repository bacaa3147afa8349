package generation

import "time"

// GenerateDTO is the body of a generation request.
type GenerateDTO struct {
	Topic    string `json:"topic" binding:"required"`
	Tone     string `json:"tone"`
	Length   string `json:"length"`
	Context  string `json:"context"`
	PostType string `json:"postType"`
}

// Context records the parameters of the most recent successful generation
// call. It is created once per success, read-only afterward, and handed by
// value to any registered consumer.
type Context struct {
	Topic      string    `json:"topic"`
	Tone       string    `json:"tone"`
	Length     string    `json:"length"`
	Context    string    `json:"context,omitempty"`
	PostType   string    `json:"postType,omitempty"`
	CapturedAt time.Time `json:"capturedAt"`
}

// SuggestionsPayload is the task payload for async suggestion generation.
type SuggestionsPayload struct {
	SessionID string `json:"session_id"`
	Topic     string `json:"topic"`
	Tone      string `json:"tone"`
	Count     int    `json:"count"`
}

// SuggestionsResult is stored as the task result.
type SuggestionsResult struct {
	Suggestions []string `json:"suggestions"`
}

type enqueueSuggestionsDTO struct {
	Topic string `json:"topic" binding:"required"`
	Tone  string `json:"tone"`
	Count int    `json:"count"`
}
