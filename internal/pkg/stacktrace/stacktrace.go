// Package stacktrace trims goroutine dumps down to this module's frames.
package stacktrace

import "strings"

// InternalPaths returns "internal/...go:LINE" locations found in a raw stack
// trace such as the output of runtime/debug.Stack.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		loc := line[idx+1:]
		if end := strings.IndexByte(loc, ' '); end != -1 {
			loc = loc[:end]
		}
		paths = append(paths, loc)
	}

	return paths
}
