package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lowercases an identifier and drops its word separators:
// "UserID", "user_id" and "user-id" all become "userid".
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(words(s), ""))
}

// LowerCamel lowercases the first word of an identifier: "ID" -> "id",
// "URLPath" -> "urlPath", "Name" -> "name". Separators are dropped.
func LowerCamel(s string) string {
	w := words(s)
	if len(w) == 0 {
		return ""
	}

	w[0] = strings.ToLower(w[0])

	return strings.Join(w, "")
}

// words splits an identifier at separators, at lower-to-upper transitions
// and before the last capital of an acronym followed by a lowercase letter,
// so "setHTTPClient" yields set, HTTP and Client.
func words(s string) []string {
	var (
		out   []string
		start = -1
	)

	runes := []rune(s)

	flush := func(end int) {
		if start >= 0 && end > start {
			out = append(out, string(runes[start:end]))
		}

		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}

		if start >= 0 && wordBreak(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return out
}

// wordBreak reports whether a new word starts at runes[i].
func wordBreak(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
