package entity

import "strings"

// NormalizeTags trims and lowercases every tag, drops blanks and duplicates,
// and keeps the order of first occurrence. The result is never nil.
func NormalizeTags(tags []string) StringArray {
	out := make(StringArray, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// NormalizeTag applies the NormalizeTags rules to a single tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
