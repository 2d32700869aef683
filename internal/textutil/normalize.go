// Package textutil provides text sanitization for extracted document content.
package textutil

import "strings"

// foldTable maps Latin-script diacritic characters to their closest
// unaccented ASCII equivalent. Covers the Polish alphabet in both cases,
// which dominates the statements this tool ingests.
var foldTable = map[rune]rune{
	'ą': 'a', 'ć': 'c', 'ę': 'e', 'ł': 'l', 'ń': 'n',
	'ó': 'o', 'ś': 's', 'ź': 'z', 'ż': 'z',
	'Ą': 'A', 'Ć': 'C', 'Ę': 'E', 'Ł': 'L', 'Ń': 'N',
	'Ó': 'O', 'Ś': 'S', 'Ź': 'Z', 'Ż': 'Z',
}

// Normalize replaces known diacritic characters with their ASCII
// equivalents. All other characters pass through unchanged.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if folded, ok := foldTable[r]; ok {
			b.WriteRune(folded)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
