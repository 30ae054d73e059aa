package grammar

import "strings"

func IsASCIIAlpha(r rune) bool { return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' }

func IsASCIIDigit(r rune) bool { return '0' <= r && r <= '9' }

func IsASCIIAlphanum(r rune) bool { return IsASCIIAlpha(r) || IsASCIIDigit(r) }

func IsASCIIHex(r rune) bool {
	return IsASCIIDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

// IsC0Control reports whether r is in U+0000..U+001F.
func IsC0Control(r rune) bool { return 0 <= r && r <= 0x1F }

func IsC0ControlOrSpace(r rune) bool { return IsC0Control(r) || r == ' ' }

func IsASCIITabOrNewline(r rune) bool { return r == '\t' || r == '\n' || r == '\r' }

// IsSchemeChar reports whether r may appear in a scheme after its first letter.
func IsSchemeChar(r rune) bool { return IsASCIIAlphanum(r) || r == '+' || r == '-' || r == '.' }

// IsForbiddenHostCodePoint reports whether r can never appear in a host.
func IsForbiddenHostCodePoint(r rune) bool {
	switch r {
	case 0, '\t', '\n', '\r', ' ', '#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|':
		return true
	}
	return false
}

// IsForbiddenDomainCodePoint reports whether r can never appear in a domain.
func IsForbiddenDomainCodePoint(r rune) bool {
	return IsForbiddenHostCodePoint(r) || IsC0Control(r) || r == '%' || r == 0x7F
}

// IsURLCodePoint reports whether r is a URL code point.
func IsURLCodePoint(r rune) bool {
	if IsASCIIAlphanum(r) {
		return true
	}
	switch r {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/', ':', ';', '=', '?', '@', '_', '~':
		return true
	}
	if r < 0xA0 || r > 0x10FFFD {
		return false
	}
	if 0xD800 <= r && r <= 0xDFFF {
		return false
	}
	// noncharacters
	if 0xFDD0 <= r && r <= 0xFDEF || r&0xFFFE == 0xFFFE {
		return false
	}
	return true
}

// IsWindowsDriveLetter reports whether s is an ASCII letter followed by ':' or '|'.
func IsWindowsDriveLetter(s string) bool {
	return len(s) == 2 && IsASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

// IsNormalizedWindowsDriveLetter reports whether s is an ASCII letter followed by ':'.
func IsNormalizedWindowsDriveLetter(s string) bool {
	return IsWindowsDriveLetter(s) && s[1] == ':'
}

// StartsWithWindowsDriveLetter reports whether rs begins with a Windows drive letter
// that is either the whole input or followed by '/', '\', '?' or '#'.
func StartsWithWindowsDriveLetter(rs []rune) bool {
	if len(rs) < 2 || !IsASCIIAlpha(rs[0]) || rs[1] != ':' && rs[1] != '|' {
		return false
	}
	if len(rs) == 2 {
		return true
	}
	switch rs[2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

// IsSingleDotSegment reports whether s is "." or its percent-encoded form.
func IsSingleDotSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

// IsDoubleDotSegment reports whether s is ".." or any mix of it with "%2e".
func IsDoubleDotSegment(s string) bool {
	switch strings.ToLower(s) {
	case "..", ".%2e", "%2e.", "%2e%2e":
		return true
	}
	return false
}
