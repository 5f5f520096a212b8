// Package codec converts Person fields to and from the delimited line format
// used by the store package.
//
// # Line Format
//
// A data file is plain text. The first line is a fixed header and every
// following line holds one record:
//
//	id,name,email,phone
//	1,Ana,ana@x.com,111
//	2,"Silva, Maria",maria@x.com,222
//
// Fields:
//   - id: base-10 integer, never escaped
//   - name, email, phone: text, escaped with [Escape]
//
// Every line, the header included, is terminated by a single '\n'.
//
// # Escaping
//
// A field that contains a comma, a double quote or a newline is wrapped in
// double quotes and every internal double quote is doubled:
//
//	say "hi", bye   ->   "say ""hi"", bye"
//
// [Unescape] reverses this. It also trims surrounding whitespace, so a value
// with leading or trailing spaces does not survive a round trip. Everything
// else does:
//
//	Unescape(Escape(x)) == x
//
// # Splitting
//
// [Split] cuts a record on the commas that sit outside quoted fields and
// returns the raw, still escaped fields. A field is quoted only when its first
// non-blank byte is a double quote, so a stray quote inside an unquoted value
// such as O"Neil is plain text. A quoted field may contain a newline, in which
// case the record spans several physical lines; [Balanced] tells a line reader
// whether it has seen the whole record yet.
//
// # Usage
//
//	line := codec.EncodeLine(1, "Silva, Maria", "maria@x.com", "222")
//	// "1,\"Silva, Maria\",maria@x.com,222\n"
//
//	raw := codec.Split(strings.TrimSuffix(line, "\n"))
//	name := codec.Unescape(raw[1]) // "Silva, Maria"
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package codec
