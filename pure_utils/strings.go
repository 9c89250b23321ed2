package pure_utils

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// Abbreviate cuts s to at most maxRunes runes, the last three being replaced by "...".
func Abbreviate(s string, maxRunes int) string {
	if maxRunes < len(ellipsis)+1 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes-len(ellipsis)]) + ellipsis
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
