package capture

import (
	"path/filepath"
	"strings"
)

// IsVideoFile checks if the given file extension is one of known video file
// extensions. Used to reject obviously wrong inputs before opening a capture.
func IsVideoFile(path string) bool {
	var desiredExtensions = []string{".mp4", ".webm", ".mov", ".flv", ".mkv", ".avi", ".wmv", ".mpg"}

	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range desiredExtensions {
		if v == ext {
			return true
		}
	}
	return false
}
