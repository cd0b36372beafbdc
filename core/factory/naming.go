package factory

import (
	"strings"
	"unicode"
)

// FormatRequestName turns a handler identifier into a request display name.
// Every case-insensitive "handler" token is removed, then a space is inserted
// before each internal uppercase rune, then the result is trimmed. Names that
// are already space-separated come back unchanged apart from trimming, so the
// formatting can be applied repeatedly.
func FormatRequestName(handler string) string {
	stripped := stripHandlerToken(handler)

	var b strings.Builder
	b.Grow(len(stripped) + 8)
	prev := ' '
	for i, r := range stripped {
		if unicode.IsUpper(r) && i > 0 && prev != ' ' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.TrimSpace(b.String())
}

func stripHandlerToken(name string) string {
	const token = "handler"

	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); {
		if len(name)-i >= len(token) && strings.EqualFold(name[i:i+len(token)], token) {
			i += len(token)
			continue
		}
		b.WriteByte(name[i])
		i++
	}
	return b.String()
}
