package serime

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/delaneyj/toolbelt/bytebufferpool"
)

// Escape replaces every reserved character in s with its &<codepoint>;
// escape. Non-reserved characters, including whitespace, pass through.
func Escape(s string) string {
	if !strings.ContainsAny(s, reservedChars) {
		return s
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isReserved(rune(c)) {
			buf.WriteByte(tokEscapeOpen)
			buf.WriteString(strconv.Itoa(int(c)))
			buf.WriteByte(tokEscapeClose)
		} else {
			buf.WriteByte(c)
		}
	}
	return string(buf.Bytes())
}

var escapeRe = regexp.MustCompile(`&(\d+);`)

// Unescape reverses Escape: every &<digits>; sequence becomes the character
// with that decimal codepoint. Unescape(Escape(s)) == s for any string.
func Unescape(s string) string {
	if !strings.ContainsRune(s, tokEscapeOpen) {
		return s
	}
	return escapeRe.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || code > 0x10FFFF {
			return m
		}
		return string(rune(code))
	})
}
