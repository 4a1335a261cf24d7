package naming

import "strings"

// IsCamelCaps returns true if name follows camel caps convention.
// With allowUnderscoreStart a single leading underscore is ignored. The remainder
// must start with a lowercase letter (uppercase for classFormat) followed by letters and digits only;
// strict additionally rejects consecutive capital letters.
func IsCamelCaps(name string, classFormat, allowUnderscoreStart, strict bool) bool {
	if allowUnderscoreStart {
		name = strings.TrimPrefix(name, "_")
	}
	if name == "" {
		return false
	}
	first := name[0]
	if classFormat {
		if !isUpper(first) {
			return false
		}
	} else if !isLower(first) {
		return false
	}
	lastWasCaps := classFormat
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isLower(c) && !isUpper(c) && !isDigit(c) {
			return false
		}
		isCaps := isUpper(c)
		if strict && isCaps && lastWasCaps {
			return false
		}
		lastWasCaps = isCaps
	}
	return true
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
