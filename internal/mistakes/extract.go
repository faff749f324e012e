package mistakes

import "strings"

// ExtractJSON returns the substring from the first '{' to the last '}' of
// text, newlines included. Models often wrap JSON in prose or code fences;
// this is the only place that tolerates it.
func ExtractJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(text, '}')
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}
