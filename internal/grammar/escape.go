package grammar

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/ghettovoice/gourl/internal/util"
)

// EncodeSet is a percent-encode set.
// Every set contains all C0 controls and all code points above U+007E,
// and each set below is a superset of the one it is built on.
type EncodeSet uint8

const (
	C0ControlSet    EncodeSet = iota // C0 controls and non-ASCII
	FragmentSet                      // C0ControlSet + space " < > `
	QuerySet                         // C0ControlSet + space " # < >
	SpecialQuerySet                  // QuerySet + '
	PathSet                          // QuerySet + ? ` { }
	UserinfoSet                      // PathSet + / : ; = @ [ \ ] ^ |
	ComponentSet                     // UserinfoSet + $ % & + ,
	FormSet                          // ComponentSet + ! ' ( ) ~
)

var encodeSetNames = [...]string{
	C0ControlSet:    "C0 control",
	FragmentSet:     "fragment",
	QuerySet:        "query",
	SpecialQuerySet: "special-query",
	PathSet:         "path",
	UserinfoSet:     "userinfo",
	ComponentSet:    "component",
	FormSet:         "application/x-www-form-urlencoded",
}

func (s EncodeSet) String() string {
	if int(s) < len(encodeSetNames) {
		return encodeSetNames[s]
	}
	return "EncodeSet(" + strconv.Itoa(int(s)) + ")"
}

// Contains reports whether r must be percent-encoded in the set.
func (s EncodeSet) Contains(r rune) bool {
	if IsC0Control(r) || r > '~' {
		return true
	}
	switch s {
	case C0ControlSet:
		return false
	case FragmentSet:
		return r == ' ' || r == '"' || r == '<' || r == '>' || r == '`'
	case QuerySet:
		return r == ' ' || r == '"' || r == '#' || r == '<' || r == '>'
	case SpecialQuerySet:
		return r == '\'' || QuerySet.Contains(r)
	case PathSet:
		return r == '?' || r == '`' || r == '{' || r == '}' || QuerySet.Contains(r)
	case UserinfoSet:
		return r == '/' || r == ':' || r == ';' || r == '=' || r == '@' ||
			'[' <= r && r <= '^' || r == '|' || PathSet.Contains(r)
	case ComponentSet:
		return '$' <= r && r <= '&' || r == '+' || r == ',' || UserinfoSet.Contains(r)
	case FormSet:
		return r == '!' || '\'' <= r && r <= ')' || r == '~' || ComponentSet.Contains(r)
	}
	return true
}

const upperhex = "0123456789ABCDEF"

func appendPercentByte(sb *strings.Builder, b byte) {
	sb.WriteByte('%')
	sb.WriteByte(upperhex[b>>4])
	sb.WriteByte(upperhex[b&15])
}

// PercentEncodeRune returns UTF-8 bytes of r each written as "%XX" with uppercase hex digits.
func PercentEncodeRune(r rune) string {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)

	var sb strings.Builder
	sb.Grow(3 * n)
	for _, b := range buf[:n] {
		appendPercentByte(&sb, b)
	}
	return sb.String()
}

// AppendEncodedRune writes r to sb, percent-encoded if the set contains it.
func AppendEncodedRune(sb *strings.Builder, r rune, set EncodeSet) {
	if !set.Contains(r) {
		sb.WriteRune(r)
		return
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for _, b := range buf[:n] {
		appendPercentByte(sb, b)
	}
}

// Encode percent-encodes every code point of s contained in set.
func Encode(s string, set EncodeSet) string {
	i := strings.IndexFunc(s, set.Contains)
	if i < 0 {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(s[:i])
	for _, r := range s[i:] {
		AppendEncodedRune(sb, r, set)
	}
	return sb.String()
}

// PercentDecode replaces every "%XX" sequence of s that has two valid hex digits with the decoded byte.
// Malformed sequences are kept as is.
func PercentDecode[T util.Byteseq](s T) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return out
}

// DecodeUTF8 decodes b as UTF-8 replacing invalid sequences with U+FFFD.
// A leading byte order mark is kept.
func DecodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}

// OutputEncoding returns the encoding to use when encoding URL components,
// nil stands for UTF-8. UTF-16 and replacement encodings fall back to UTF-8.
func OutputEncoding(enc encoding.Encoding) encoding.Encoding {
	if enc == nil || enc == unicode.UTF8 {
		return nil
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return enc
	}
	switch name {
	case "utf-8", "utf-16be", "utf-16le", "replacement":
		return nil
	}
	return enc
}

// EncodeAfterEncoding encodes s with enc and percent-encodes every resulting byte
// that is in set. If spaceAsPlus is true, spaces are written as '+'.
// Code points that enc cannot represent are written as percent-encoded "&#N;".
// A nil enc means UTF-8.
func EncodeAfterEncoding(enc encoding.Encoding, s string, set EncodeSet, spaceAsPlus bool) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	writeBytes := func(bs []byte) {
		for _, b := range bs {
			switch {
			case spaceAsPlus && b == ' ':
				sb.WriteByte('+')
			case set.Contains(rune(b)):
				appendPercentByte(sb, b)
			default:
				sb.WriteByte(b)
			}
		}
	}

	enc = OutputEncoding(enc)
	if enc == nil {
		writeBytes([]byte(s))
		return sb.String()
	}

	encoder := enc.NewEncoder()
	var buf [utf8.UTFMax]byte
	for _, r := range s {
		n := utf8.EncodeRune(buf[:], r)
		bs, err := encoder.Bytes(buf[:n])
		if err != nil {
			sb.WriteString("%26%23")
			sb.WriteString(strconv.Itoa(int(r)))
			sb.WriteString("%3B")
			continue
		}
		writeBytes(bs)
	}
	return sb.String()
}

func ishex(c byte) bool { return IsASCIIHex(rune(c)) }

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
