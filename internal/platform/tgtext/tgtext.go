// Package tgtext measures and trims text the way Telegram counts it.
//
// Telegram limits message and caption length in UTF-16 code units, so
// characters outside the BMP (most emoji) count twice.
package tgtext

import (
	"unicode/utf16"
)

// Telegram length limits in UTF-16 code units.
const (
	MaxMessageLen = 4096
	MaxCaptionLen = 1024
)

const ellipsis = "…"

// Len returns the number of UTF-16 code units needed to encode s.
func Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}

	return n
}

// Truncate cuts s to at most limit code units, ending with an ellipsis when
// anything was dropped.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	if Len(s) <= limit {
		return s
	}

	return prefix(s, limit-Len(ellipsis)) + ellipsis
}

// prefix returns the longest prefix of s that fits in limit code units
// without splitting a surrogate pair.
func prefix(s string, limit int) string {
	units := 0

	for i, r := range s {
		size := utf16.RuneLen(r)
		if units+size > limit {
			return s[:i]
		}

		units += size
	}

	return s
}
