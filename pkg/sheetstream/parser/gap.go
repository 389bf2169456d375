package parser

import "strings"

// ColumnGap returns the signed column distance from prev to cur, two cell
// references such as "A7" and "D7". Only digits are stripped before the
// letters are converted, so absolute markers like "$" are not understood.
func ColumnGap(prev, cur string) int64 {
	return ColumnNumber(stripDigits(cur)) - ColumnNumber(stripDigits(prev))
}

// ColumnNumber converts column letters to their 1-based number using
// bijective base 26: A=1 .. Z=26, AA=27.
func ColumnNumber(letters string) int64 {
	var total int64
	for i := 0; i < len(letters); i++ {
		total = total*26 + int64(letters[i]) - 'A' + 1
	}
	return total
}

func stripDigits(ref string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, ref)
}
