package errors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxLabelLength bounds organization and category labels.
const maxLabelLength = 256

// categoryKeyRegex matches category keys. Keys become node ids and edge id
// components, so they are restricted to a URL- and DOT-safe alphabet.
var categoryKeyRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)

// ValidateCategoryKey validates a category key used as a node identifier.
func ValidateCategoryKey(key string) error {
	if key == "" {
		return Validation("category key cannot be empty")
	}
	if len(key) > 64 {
		return Validation("category key too long (max 64 characters): %q", key)
	}
	if key == "root" {
		return Validation("category key %q is reserved", key)
	}
	if !categoryKeyRegex.MatchString(key) {
		return Validation("invalid category key: %q", key)
	}
	return nil
}

// ValidateLabel validates a display label.
// Labels may span multiple lines but must not contain other control characters.
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return Validation("label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if r != '\n' && unicode.IsControl(r) {
			return Validation("label contains invalid control characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateSnapshotID validates a stored map identifier (a UUID).
func ValidateSnapshotID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "snapshot id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid snapshot id: %q", id)
	}
	return nil
}
