package media

import (
	"testing"

	"github.com/postwave/composer-core/internal/models"
)

func TestKindFromContentType(t *testing.T) {
	cases := []struct {
		contentType string
		filename    string
		want        models.MediaKind
	}{
		{"image/png", "chart.png", models.MediaImage},
		{"image/jpeg", "photo.JPG", models.MediaImage},
		{"video/mp4", "demo.mp4", models.MediaVideo},
		{"application/pdf", "deck.pdf", models.MediaDocument},
		{"", "photo.png", models.MediaImage},
		{"application/octet-stream", "chart.jpeg", models.MediaImage},
		{"", "notes.unknownext", models.MediaDocument},
	}
	for _, tc := range cases {
		if got := KindFromContentType(tc.contentType, tc.filename); got != tc.want {
			t.Errorf("KindFromContentType(%q, %q) = %q, want %q",
				tc.contentType, tc.filename, got, tc.want)
		}
	}
}
