package utils

import (
	"fmt"
	"runtime"
	"strings"
)

// projectMarker is the directory name the reported paths are trimmed to
const projectMarker = "product-api"

// GetFileAndLoC returns the file path and line of code with skip being the number of stack frames to skip
func GetFileAndLoC(skip int) string {
	_, filepath, line, _ := runtime.Caller(1 + skip)

	// trim to only after product-api, or to the last three segments when
	// the checkout directory is named differently
	if i := strings.LastIndex(filepath, projectMarker); i != -1 {
		filepath = filepath[i:]
	} else {
		filepath = lastSegments(filepath, 3)
	}

	return fmt.Sprintf(
		"%s:%d",
		filepath,
		line,
	)
}

func lastSegments(path string, n int) string {
	parts := strings.Split(path, "/")
	if len(parts) <= n {
		return path
	}
	return strings.Join(parts[len(parts)-n:], "/")
}
