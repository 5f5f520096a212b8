package codec

import (
	"strconv"
	"strings"
)

// Header is the first line of every data file, without its newline
const Header = "id,name,email,phone"

const (
	delimiter = ','
	quote     = '"'
)

// Escape makes a field safe for the line format.
// Fields containing a comma, a double quote or a newline are quoted.
func Escape(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Unescape reverses Escape. Surrounding whitespace is trimmed first.
func Unescape(field string) string {
	trimmed := strings.TrimSpace(field)
	if len(trimmed) >= 2 && trimmed[0] == quote && trimmed[len(trimmed)-1] == quote {
		return strings.ReplaceAll(trimmed[1:len(trimmed)-1], `""`, `"`)
	}
	return trimmed
}

// EncodeLine renders one record line, newline included
func EncodeLine(id int64, fields ...string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(id, 10))
	for _, f := range fields {
		b.WriteByte(delimiter)
		b.WriteString(Escape(f))
	}
	b.WriteByte('\n')
	return b.String()
}

// Split cuts a record on commas outside quoted fields.
// A quote opens a quoted field only at the start of a field; anywhere else it
// is literal text. The returned fields are raw: quotes and doubled quotes are
// kept for Unescape.
func Split(line string) []string {
	fields, _ := scan(line)
	return fields
}

// Balanced reports whether s leaves no quoted field open
func Balanced(s string) bool {
	_, open := scan(s)
	return !open
}

func scan(line string) ([]string, bool) {
	fields := make([]string, 0, 4)
	start := 0
	atFieldStart := true // only blanks since the last delimiter
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inQuotes {
			if c == quote {
				if i+1 < len(line) && line[i+1] == quote {
					i++
					continue
				}
				inQuotes = false
			}
			continue
		}
		switch {
		case c == delimiter:
			fields = append(fields, line[start:i])
			start = i + 1
			atFieldStart = true
		case c == quote && atFieldStart:
			inQuotes = true
			atFieldStart = false
		case c != ' ' && c != '\t':
			atFieldStart = false
		}
	}
	return append(fields, line[start:]), inQuotes
}
