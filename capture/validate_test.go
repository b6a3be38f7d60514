package capture

import "testing"

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"MP4 file", "clip.mp4", true},
		{"Uppercase extension", "CLIP.MP4", true},
		{"MKV with path", "/media/videos/movie.mkv", true},
		{"WebM file", "recording.webm", true},
		{"Image file", "frame.jpg", false},
		{"Sidecar state file", "clip.mp4.sharpctl.json", false},
		{"No extension", "clip", false},
		{"Empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVideoFile(tt.path); got != tt.want {
				t.Errorf("IsVideoFile(%q) = %v, expected %v", tt.path, got, tt.want)
			}
		})
	}
}
