package escape

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

const hexDigits = "0123456789ABCDEF"

// Unescape decodes s with the legacy percent scheme.
// %uXXXX yields the UTF-16 code unit XXXX and %XX yields the Latin-1
// character 0xXX. Malformed escapes are copied through unchanged.
func Unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	in := utf16.Encode([]rune(s))
	out := make([]uint16, 0, len(in))

	for k := 0; k < len(in); k++ {
		c := in[k]
		if c != '%' {
			out = append(out, c)
			continue
		}

		if k+5 < len(in) && in[k+1] == 'u' {
			if v, ok := hexUnits(in[k+2 : k+6]); ok {
				out = append(out, v)
				k += 5
				continue
			}
		}

		if k+2 < len(in) {
			if v, ok := hexUnits(in[k+1 : k+3]); ok {
				out = append(out, uint16(charmap.ISO8859_1.DecodeByte(byte(v))))
				k += 2
				continue
			}
		}

		out = append(out, c)
	}

	return string(utf16.Decode(out))
}

// Escape encodes s with the legacy percent scheme understood by Unescape.
// ASCII letters, digits and @*_+-./ pass through.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, c := range utf16.Encode([]rune(s)) {
		switch {
		case c < 0x80 && passThrough(byte(c)):
			b.WriteByte(byte(c))
		case c < 0x100:
			v, _ := charmap.ISO8859_1.EncodeRune(rune(c))
			b.WriteByte('%')
			b.WriteByte(hexDigits[v>>4])
			b.WriteByte(hexDigits[v&0x0f])
		default:
			b.WriteString("%u")
			b.WriteByte(hexDigits[c>>12])
			b.WriteByte(hexDigits[(c>>8)&0x0f])
			b.WriteByte(hexDigits[(c>>4)&0x0f])
			b.WriteByte(hexDigits[c&0x0f])
		}
	}

	return b.String()
}

func passThrough(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("@*_+-./", c) >= 0
}

func hexUnits(units []uint16) (uint16, bool) {
	var v uint16
	for _, u := range units {
		d, ok := hexValue(u)
		if !ok {
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}

func hexValue(u uint16) (uint16, bool) {
	switch {
	case '0' <= u && u <= '9':
		return u - '0', true
	case 'a' <= u && u <= 'f':
		return u - 'a' + 10, true
	case 'A' <= u && u <= 'F':
		return u - 'A' + 10, true
	}
	return 0, false
}
