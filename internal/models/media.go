package models

// MediaKind classifies an attached media object.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// MediaStatus is the upload state of a media attachment.
type MediaStatus string

const (
	MediaPending   MediaStatus = "pending"
	MediaUploading MediaStatus = "uploading"
	MediaComplete  MediaStatus = "complete"
	MediaError     MediaStatus = "error"
)

// MediaRef points at an uploaded media object and its preview URL.
type MediaRef struct {
	ID         string      `json:"id"`
	Key        string      `json:"key"` // object key in the media bucket
	Name       string      `json:"name"`
	Kind       MediaKind   `json:"kind"`
	PreviewURL string      `json:"previewUrl"`
	Status     MediaStatus `json:"status"`
	Size       int64       `json:"size,omitempty"`
}
