package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// codeRegex matches ISO 639 codes as used for catalog ids: two or three
// lowercase letters, optionally followed by further lowercase segments
// (Wiktionary uses ids like "urj-fin" for sub-families).
var codeRegex = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]{2,8})*$`)

// ValidateCode validates a language or family code supplied by a user.
func ValidateCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "code cannot be empty")
	}
	if len(code) > 32 {
		return New(ErrCodeInvalidInput, "code too long (max 32 characters)")
	}
	if !codeRegex.MatchString(code) {
		return New(ErrCodeInvalidInput, "invalid language code: %q", code)
	}
	return nil
}

var qidRegex = regexp.MustCompile(`^Q[1-9][0-9]*$`)

// ValidateQID validates a Wikidata entity id such as "Q33".
func ValidateQID(id string) error {
	if !qidRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid Wikidata id: %q", id)
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
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
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
