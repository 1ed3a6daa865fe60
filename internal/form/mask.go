package form

import "strings"

const maxNumberDigits = 6

// MaskNumber keeps at most six digits of s and formats them as 99-99-99.
// Dashes are placed only between digits, so deleting back over a dash works.
func MaskNumber(s string) string {
	digits := make([]rune, 0, maxNumberDigits)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == maxNumberDigits {
				break
			}
		}
	}

	var b strings.Builder
	for i, r := range digits {
		if i == 2 || i == 4 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}
