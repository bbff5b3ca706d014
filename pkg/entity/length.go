package entity

import "unicode/utf8"

// Len counts characters, not bytes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
