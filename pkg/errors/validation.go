package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// idRegex matches catalog identifiers such as "hair-3", "shape2" or "style1".
var idRegex = regexp.MustCompile(`^[a-z][a-zA-Z0-9-]*$`)

// ValidateID validates a catalog identifier received from an outer surface
// (query string, preset file, command-line flag).
//
// The rules are conservative:
//   - No empty ids
//   - Maximum length of 64 characters
//   - Lowercase first letter, then letters, digits and dashes
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "id too long (max 64 characters)")
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid id: %q", id)
	}
	return nil
}

// ValidateFilename validates an export filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	if len(filename) > 255 {
		return New(ErrCodeInvalidPath, "filename too long (max 255 characters)")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	return nil
}
