package vte

import "github.com/unilibs/uniwidth"

// runeWidth classifies a codepoint's display width: 2 for wide (CJK, emoji),
// 1 for normal, 0 for zero-width combining marks and control characters.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}
