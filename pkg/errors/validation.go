package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateID validates a widget or master identifier.
//
// Identifiers are opaque but must be usable as map keys, in file names and on
// the command line:
//   - No empty identifiers
//   - No whitespace or control characters
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id %q contains whitespace or control characters", id)
		}
	}

	return nil
}

// ValidateName validates a human-readable name such as a master name.
// Inner spaces are allowed; leading and trailing whitespace is not.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidInput, "name cannot start or end with whitespace")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path given on the command line or in config.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// deviceNameRegex matches device profile names such as "remarkable-2".
var deviceNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateDeviceName validates a device profile name.
func ValidateDeviceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDevice, "device name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidDevice, "device name too long (max 64 characters)")
	}

	if !deviceNameRegex.MatchString(name) {
		return New(ErrCodeInvalidDevice, "invalid device name: %q (use lowercase letters, digits and dashes)", name)
	}

	return nil
}

// ValidatePage validates a 1-based page number against a page count.
// A count of zero or less means the count is unknown and only the lower
// bound is checked.
func ValidatePage(page, count int) error {
	if page < 1 {
		return New(ErrCodeInvalidInput, "page must be at least 1, got %d", page)
	}
	if count > 0 && page > count {
		return New(ErrCodeInvalidInput, "page %d out of range (template has %d pages)", page, count)
	}
	return nil
}
