package configfs

import "strings"

const (
	// MaxPathLength is the longest composed path this module processes.
	// Composition that would exceed it fails with ErrPathTooLong before any
	// I/O is attempted.
	MaxPathLength = 256

	// MaxStrLength bounds a single attribute line, including its newline.
	MaxStrLength = 256

	// MaxNameLength bounds a single entity name segment.
	MaxNameLength = 40
)

// Join composes path segments into one bounded path. Empty segments are
// skipped rather than producing doubled separators.
func Join(parts ...string) (string, error) {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	p := strings.Join(kept, "/")
	if len(p) >= MaxPathLength {
		return "", ErrPathTooLong
	}

	return p, nil
}
