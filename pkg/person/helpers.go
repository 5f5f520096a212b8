package person

import "strings"

// FormatPhone strips everything but ASCII digits, e.g. "(11) 9.8765-4321" -> "11987654321"
func FormatPhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidEmail is a basic shape check: an "@", a "." and more than five bytes
func ValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".") && len(email) > 5
}
