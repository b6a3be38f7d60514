package utils

import (
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveWorkers picks the decode worker count: the flag wins over the
// environment default, and anything non-positive falls back to one worker
// per CPU. Videos on network mounts get a single worker, since every worker
// opens its own decode handle against the file.
func ResolveWorkers(flag, configured int, videoPath string) int {
	workers := flag
	if workers <= 0 {
		workers = configured
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if IsNetworkDrive(videoPath) {
		return 1
	}
	return workers
}

// IsNetworkDrive detects if a file path is on a network-mounted drive
func IsNetworkDrive(filePath string) bool {
	// Check Windows UNC paths first, before converting to absolute path
	if strings.HasPrefix(filePath, "//") || strings.HasPrefix(filePath, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}

	// Check common network mount prefixes on different platforms
	networkPrefixes := []string{
		"/mnt/",     // Linux NFS/SMB mounts
		"/Volumes/", // macOS network volumes
	}
	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	return false
}
