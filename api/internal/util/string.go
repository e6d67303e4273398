package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// FencedBlock returns the body of the first ``` block in s, preferring a block
// tagged json.
func FencedBlock(s string) (string, bool) {
	for _, open := range []string{"```json", "```"} {
		i := strings.Index(s, open)
		if i < 0 {
			continue
		}
		rest := s[i+len(open):]
		j := strings.Index(rest, "```")
		if j < 0 {
			continue
		}
		return strings.TrimSpace(rest[:j]), true
	}
	return "", false
}

// ExtractJSONObject finds a JSON object anywhere in model output: inside a
// fenced block or as the outermost {...} span of the bare text.
func ExtractJSONObject(s string) (string, bool) {
	if body, ok := FencedBlock(s); ok {
		s = body
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// NormalizeText applies NFKC and drops control characters other than newline
// and tab.
func NormalizeText(text string) string {
	normed := strings.TrimSpace(norm.NFKC.String(text))
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
}

// NormalizeLabel is NormalizeText with every whitespace run collapsed to one
// space, so labels split over lines still match their tokens.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(NormalizeText(label)), " ")
}
