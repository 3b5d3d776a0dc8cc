// Package escape implements the two escaping rules used when emitting console
// scripts: console text escaping for tokens placed inside a single-quoted
// console format string, and attribute escaping for values placed inside the
// script tag.
package escape

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var consoleNeedsEscape = func() [256]bool {
	var table [256]bool
	for _, c := range []byte{'\\', '<', '>', '\'', '\n', '\r', '%'} {
		table[c] = true
	}
	return table
}()

// Console escapes s for use inside a single-quoted console format string.
//
// Each backslash, angle bracket, single quote, line feed and carriage return is
// escaped with a backslash. Percent signs are doubled because % is the console
// placeholder sigil. Every input byte is replaced at most once, so the result
// never contains a replacement of a replacement.
func Console(s string) string {
	i := 0
	for i < len(s) && !consoleNeedsEscape[s[i]] {
		i++
	}
	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '<':
			b.WriteString(`\<`)
		case '>':
			b.WriteString(`\>`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '%':
			b.WriteString(`%%`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Attr escapes s for use as an HTML attribute value.
//
// ASCII letters, digits and the characters ",.-_" pass through unchanged.
// The characters &, <, > and " become named entities. Invalid UTF-8 and
// control characters other than tab, line feed and carriage return become the
// replacement character. Everything else becomes a hexadecimal character
// reference, two digits wide for ASCII and at least four digits otherwise.
func Attr(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case isAttrSafe(r):
			b.WriteRune(r)
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r == utf8.RuneError && size == 1,
			r < 0x20 && r != '\t' && r != '\n' && r != '\r',
			r >= 0x7f && r <= 0x9f:
			b.WriteString("&#xFFFD;")
		default:
			hex := strings.ToUpper(strconv.FormatInt(int64(r), 16))
			if r < utf8.RuneSelf && len(hex) < 2 {
				hex = "0" + hex
			} else if r >= utf8.RuneSelf && len(hex) < 4 {
				hex = strings.Repeat("0", 4-len(hex)) + hex
			}
			b.WriteString("&#x")
			b.WriteString(hex)
			b.WriteByte(';')
		}
	}
	return b.String()
}

func isAttrSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ',', r == '.', r == '-', r == '_':
		return true
	}
	return false
}
