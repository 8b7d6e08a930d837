package errors

import (
	"strings"
	"unicode"
)

// ValidateRoot validates a scan root path for safety before any
// filesystem access. Existence and directory checks are left to the
// scanner; this rejects strings that should never reach the
// filesystem at all.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No null bytes or other control characters
//   - Maximum length of 4096 characters
func ValidateRoot(path string) error {
	if path == "" {
		return New(ErrCodeInvalidRoot, "scan root cannot be empty")
	}

	const maxRootLength = 4096
	if len(path) > maxRootLength {
		return New(ErrCodeInvalidRoot, "scan root too long (max %d characters)", maxRootLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidRoot, "scan root contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormat checks a user-supplied output format against the
// allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unknown format %q (want %s)", format, strings.Join(allowed, ", "))
}

// ValidateExcludeName validates a directory name passed to --exclude.
// Exclude entries match by name during traversal, so path separators
// would silently never match.
func ValidateExcludeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "exclude name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "exclude %q must be a directory name, not a path", name)
	}
	return nil
}
