package validation

import (
	"strings"
)

// IsValidGST reports whether s is a well-formed GST number: exactly 15 ASCII
// letters or digits after trimming. Format-only; the embedded state code and
// PAN are not decoded.
func IsValidGST(s string) bool {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) != 15 {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}
