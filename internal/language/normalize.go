package language

import "strings"

// NormalizeTag lowercases a language tag and converts "_" separators to "-".
// Returns an empty string for blank input or tags with non-letter characters.
func NormalizeTag(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return ""
	}

	tag = strings.ReplaceAll(tag, "_", "-")
	subtags := strings.Split(tag, "-")
	kept := subtags[:0]
	for _, subtag := range subtags {
		if subtag == "" {
			continue
		}
		if !isASCIILower(subtag) {
			return ""
		}
		kept = append(kept, subtag)
	}

	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "-")
}

// NormalizeCode reduces a tag to its primary subtag ("fr" from "fr-CA").
func NormalizeCode(raw string) string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return ""
	}
	if i := strings.IndexByte(tag, '-'); i >= 0 {
		return tag[:i]
	}
	return tag
}

func isASCIILower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
