package errors

import (
	"strings"
	"unicode"
)

// ValidateAttributeID validates a user-supplied attribute id. Sentinel and
// negative ids are rejected before any catalogue lookup happens.
func ValidateAttributeID(id int) error {
	if id <= 0 {
		return New(ErrCodeInvalidAttribute, "attribute id must be positive, got %d", id)
	}
	return nil
}

// ValidateBaseURL validates a configured base URL. The scheme is optional
// (http:// is assumed downstream), but the value must be a single plausible
// host reference.
//
// Validation rules:
//   - Not empty
//   - No whitespace or control characters
//   - Maximum length of 256 characters
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "base URL cannot be empty")
	}

	if len(rawURL) > 256 {
		return New(ErrCodeInvalidInput, "base URL too long (max 256 characters)")
	}

	for _, r := range rawURL {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "base URL contains whitespace or control characters")
		}
	}

	if strings.Contains(rawURL, "\\") {
		return New(ErrCodeInvalidInput, "base URL cannot contain backslashes")
	}

	return nil
}
